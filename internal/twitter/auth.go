package twitter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Qbix/Twitter/internal/metrics"
	"github.com/Qbix/Twitter/pkg/utils"
)

// tokenPath is the client-credentials token endpoint relative to the base URL.
const tokenPath = "/oauth2/token"

// ObtainBearerToken exchanges the app's API key and secret for an app-only
// bearer token. It makes exactly one attempt and does not store the result.
// A response whose token_type is not "bearer" yields ErrNotBearer.
func (c *Client) ObtainBearerToken(ctx context.Context, creds *AppCredentials) (string, error) {
	if creds == nil || creds.APIKey == "" || creds.Secret == "" {
		metrics.IncTokenExchange("missing_credentials")
		return "", &ConfigError{Field: "apiKey"}
	}

	// AuthStyleInHeader sends Basic base64(urlencode(key):urlencode(secret)).
	cc := &clientcredentials.Config{
		ClientID:     creds.APIKey,
		ClientSecret: creds.Secret,
		TokenURL:     c.baseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	httpClient := &http.Client{
		Timeout:   c.exec.HTTPClient().Timeout,
		Transport: &headerTransport{base: c.exec.HTTPClient().Transport, userAgent: c.userAgent},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	tok, err := cc.Token(ctx)
	if err != nil {
		metrics.IncTokenExchange("failed")
		c.logger.Warn("twitter.auth.token_exchange_failed",
			zap.String("app_id", creds.AppID),
			zap.String("api_key", utils.MaskSecret(creds.APIKey)),
			zap.Error(err))
		return "", fmt.Errorf("twitter auth: token exchange for app %q: %w", creds.AppID, err)
	}

	if !strings.EqualFold(tok.TokenType, tokenTypeBearer) {
		metrics.IncTokenExchange("not_bearer")
		c.logger.Warn("twitter.auth.unexpected_token_type",
			zap.String("app_id", creds.AppID),
			zap.String("token_type", tok.TokenType))
		return "", ErrNotBearer
	}

	metrics.IncTokenExchange("ok")
	c.logger.Info("twitter.auth.token_obtained",
		zap.String("app_id", creds.AppID),
		zap.String("token", utils.MaskSecret(tok.AccessToken)))

	return tok.AccessToken, nil
}

// headerTransport adds the fixed headers the token endpoint expects.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
