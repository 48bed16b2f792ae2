package twitter

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── ObtainBearerToken: request shape ─────────────────────────────────────────

func TestObtainBearerToken_SendsClientCredentials(t *testing.T) {
	creds := &AppCredentials{AppID: "app", APIKey: "key with space", Secret: "s3cr=t"}

	c, mt := newTestClient(t, nil, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, testBaseURL+"/oauth2/token", req.URL.String())

		want := base64.StdEncoding.EncodeToString([]byte(url.QueryEscape("key with space") + ":" + url.QueryEscape("s3cr=t")))
		assert.Equal(t, "Basic "+want, req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
		assert.Equal(t, "test-agent", req.Header.Get("User-Agent"))
		assert.Contains(t, req.Header.Get("Content-Type"), "application/x-www-form-urlencoded")

		body, _ := io.ReadAll(req.Body)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, "client_credentials", form.Get("grant_type"))

		return jsonResponse(http.StatusOK, mustJSON(map[string]string{
			"token_type":   "bearer",
			"access_token": "AAAA%2FAAA",
		})), nil
	})

	token, err := c.ObtainBearerToken(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "AAAA%2FAAA", token)
	assert.Len(t, mt.paths(), 1, "exactly one exchange")
}

// ─── ObtainBearerToken: token type ────────────────────────────────────────────

func TestObtainBearerToken_AcceptsBearerCaseInsensitive(t *testing.T) {
	c, _ := newTestClient(t, nil, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"token_type":"Bearer","access_token":"tok"}`), nil
	})

	token, err := c.ObtainBearerToken(context.Background(), &AppCredentials{APIKey: "k", Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestObtainBearerToken_RejectsOtherTokenTypes(t *testing.T) {
	c, _ := newTestClient(t, nil, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"token_type":"mac","access_token":"tok"}`), nil
	})

	token, err := c.ObtainBearerToken(context.Background(), &AppCredentials{APIKey: "k", Secret: "s"})
	assert.ErrorIs(t, err, ErrNotBearer)
	assert.Empty(t, token)
}

// ─── ObtainBearerToken: failures ──────────────────────────────────────────────

func TestObtainBearerToken_NonOKStatus(t *testing.T) {
	c, mt := newTestClient(t, nil, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"errors":[{"code":99,"message":"bad"}]}`), nil
	})

	token, err := c.ObtainBearerToken(context.Background(), &AppCredentials{AppID: "app", APIKey: "k", Secret: "s"})
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "token exchange")
	assert.Len(t, mt.paths(), 1, "no retry")
}

func TestObtainBearerToken_TransportError(t *testing.T) {
	boom := errors.New("dial tcp: timeout")
	c, _ := newTestClient(t, nil, func(*http.Request) (*http.Response, error) {
		return nil, boom
	})

	_, err := c.ObtainBearerToken(context.Background(), &AppCredentials{APIKey: "k", Secret: "s"})
	assert.ErrorIs(t, err, boom)
}

func TestObtainBearerToken_MissingKeyOrSecret(t *testing.T) {
	c, mt := newTestClient(t, nil, func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})

	_, err := c.ObtainBearerToken(context.Background(), &AppCredentials{APIKey: "k"})
	assert.ErrorIs(t, err, ErrMissingConfig)

	_, err = c.ObtainBearerToken(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.Empty(t, mt.paths())
}
