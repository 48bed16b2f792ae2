package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Qbix/Twitter/internal/twitter"
	pkgsecrets "github.com/Qbix/Twitter/pkg/secrets"
)

// ─── Mock provider ────────────────────────────────────────────────────────────

type mockProvider struct {
	secrets map[string]map[string]string
	names   []string
	listErr error
	gets    int
}

func (m *mockProvider) GetSecret(_ context.Context, name string) (map[string]string, error) {
	m.gets++
	s, ok := m.secrets[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (m *mockProvider) ListSecrets(_ context.Context, _ string) ([]string, error) {
	return m.names, m.listErr
}

func newAppResolver(p pkgsecrets.Provider) *AppResolver {
	return NewAppResolver(zap.NewNop(), "dev", p, pkgsecrets.NewCache[twitter.AppCredentials](time.Hour))
}

// ─── Resolve ──────────────────────────────────────────────────────────────────

func TestAppResolver_ResolveKeySecret(t *testing.T) {
	p := &mockProvider{secrets: map[string]map[string]string{
		"dev/myapp/twitter": {"api_key": "key", "secret": "sec"},
	}}
	r := newAppResolver(p)

	creds, err := r.Resolve(context.Background(), "MyApp")
	require.NoError(t, err)
	assert.Equal(t, "MyApp", creds.AppID)
	assert.Equal(t, "key", creds.APIKey)
	assert.Equal(t, "sec", creds.Secret)
	assert.Empty(t, creds.BearerToken)
}

func TestAppResolver_ResolveUsesCache(t *testing.T) {
	p := &mockProvider{secrets: map[string]map[string]string{
		"dev/myapp/twitter": {"bearer_token": "tok"},
	}}
	r := newAppResolver(p)

	for i := 0; i < 3; i++ {
		creds, err := r.Resolve(context.Background(), "myapp")
		require.NoError(t, err)
		assert.Equal(t, "tok", creds.BearerToken)
	}
	assert.Equal(t, 1, p.gets, "provider should be hit once")
}

func TestAppResolver_ResolveMissingFields(t *testing.T) {
	p := &mockProvider{secrets: map[string]map[string]string{
		"dev/nokey/twitter":    {"secret": "sec"},
		"dev/nosecret/twitter": {"api_key": "key"},
	}}
	r := newAppResolver(p)

	_, err := r.Resolve(context.Background(), "nokey")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")

	_, err = r.Resolve(context.Background(), "nosecret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'secret'")
}

func TestAppResolver_ResolveUnknownApp(t *testing.T) {
	r := newAppResolver(&mockProvider{})

	_, err := r.Resolve(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ghost"`)

	_, err = r.Resolve(context.Background(), "")
	require.Error(t, err)
}

// ─── DiscoverApps ─────────────────────────────────────────────────────────────

func TestAppResolver_DiscoverApps(t *testing.T) {
	p := &mockProvider{names: []string{
		"dev/app-one/twitter",
		"DEV/App-Two/Twitter",
		"dev/app-three/telegram",
		"dev/nested/path/twitter",
		"prod/other/twitter",
	}}
	r := newAppResolver(p)

	apps, err := r.DiscoverApps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"app-one", "app-two"}, apps)
}

func TestAppResolver_DiscoverAppsError(t *testing.T) {
	r := newAppResolver(&mockProvider{listErr: errors.New("denied")})

	_, err := r.DiscoverApps(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discover apps")
}

func TestResolver_SecretName(t *testing.T) {
	r := NewResolver[string](zap.NewNop(), "Prod", "twitter", &mockProvider{}, pkgsecrets.NewCache[string](time.Minute))
	assert.Equal(t, "prod/myapp/twitter", r.SecretName("MyApp"))
}

var _ twitter.CredentialsResolver = (*AppResolver)(nil)
