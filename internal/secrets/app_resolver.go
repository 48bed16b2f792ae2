package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Qbix/Twitter/internal/twitter"
	pkgsecrets "github.com/Qbix/Twitter/pkg/secrets"
)

// AppResolver resolves X app credentials from a secrets Provider.
// It implements twitter.CredentialsResolver.
//
// Secret naming convention: {env}/{appID}/twitter
// Secret JSON format:       {"api_key": "...", "secret": "...", "bearer_token": "..."}
type AppResolver struct {
	inner *Resolver[twitter.AppCredentials]
}

// NewAppResolver constructs a Twitter credentials resolver.
func NewAppResolver(
	logger *zap.Logger,
	env string,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[twitter.AppCredentials],
) *AppResolver {
	return &AppResolver{inner: NewResolver(logger, env, "twitter", provider, cache)}
}

// Resolve fetches or caches the credentials for appID.
func (r *AppResolver) Resolve(ctx context.Context, appID string) (*twitter.AppCredentials, error) {
	creds, err := r.inner.Resolve(ctx, appID, func(m map[string]string) (twitter.AppCredentials, error) {
		return parseAppCredentials(appID, m)
	})
	if err != nil {
		return nil, err
	}
	return &creds, nil
}

// DiscoverApps lists all app IDs that have Twitter secrets configured.
func (r *AppResolver) DiscoverApps(ctx context.Context) ([]string, error) {
	return r.inner.DiscoverApps(ctx)
}

// parseAppCredentials requires either a bearer token or a key/secret pair.
func parseAppCredentials(appID string, m map[string]string) (twitter.AppCredentials, error) {
	creds := twitter.AppCredentials{
		AppID:       appID,
		APIKey:      m["api_key"],
		Secret:      m["secret"],
		BearerToken: m["bearer_token"],
	}
	if creds.BearerToken != "" {
		return creds, nil
	}
	if creds.APIKey == "" {
		return twitter.AppCredentials{}, fmt.Errorf("missing required field 'api_key'")
	}
	if creds.Secret == "" {
		return twitter.AppCredentials{}, fmt.Errorf("missing required field 'secret'")
	}
	return creds, nil
}
