package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Qbix/Twitter/internal/httpclient"
	"github.com/Qbix/Twitter/internal/metrics"
)

const (
	// DefaultBaseURL is the X API host.
	DefaultBaseURL = "https://api.x.com"
	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "Qbix"

	apiVersion = "2"
)

// Config holds client-wide settings. Per-app credentials come from the
// CredentialsResolver.
type Config struct {
	BaseURL   string
	UserAgent string
}

// Client wraps low-level HTTP communication with the X v2 API.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	logger    *zap.Logger
	exec      *httpclient.Executor
	creds     CredentialsResolver
	baseURL   string
	userAgent string
}

// NewClient constructs a new X API client. If httpClient is nil, a client
// with a 30s timeout and keep-alives disabled is used.
func NewClient(logger *zap.Logger, cfg Config, creds CredentialsResolver, httpClient *http.Client) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		logger:    logger,
		exec:      httpclient.New(logger, httpClient, "twitter"),
		creds:     creds,
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// Endpoint returns the URL of an API method on baseURL. Multiple ids are
// joined with commas.
func Endpoint(baseURL, method string, ids ...string) string {
	u := strings.TrimRight(baseURL, "/") + "/" + apiVersion + "/" + method
	if len(ids) == 0 {
		return u
	}
	return u + "/" + strings.Join(ids, ",")
}

// Endpoint returns the URL of an API method on the client's base URL.
func (c *Client) Endpoint(method string, ids ...string) string {
	return Endpoint(c.baseURL, method, ids...)
}

// API calls a v2 method on behalf of appID and returns the decoded body.
// ids may be nil. q may be nil, a Params, a RawQuery or url.Values.
func (c *Client) API(ctx context.Context, appID, method string, ids []string, q Query) (Response, error) {
	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("app_id", appID),
		zap.String("method", method))

	endpoint := c.Endpoint(method, ids...)
	if q != nil {
		if query := q.Encode(); query != "" {
			endpoint += "?" + query
		}
	}

	token, err := c.bearerToken(ctx, appID)
	if err != nil {
		metrics.IncAPIError(method, "config")
		log.Error("twitter.api.no_bearer_token", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("twitter: build request: %w", err)
	}
	c.setHeaders(req, token)

	var body Response
	status, err := c.exec.DoJSON(ctx, req, method, &body)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) {
			metrics.IncAPIError(method, "api")
			return nil, &APIError{Code: se.Code, Description: strings.TrimSpace(se.Body)}
		}
		metrics.IncAPIError(method, "transport")
		return nil, fmt.Errorf("twitter: %s: %w", method, err)
	}

	if code, ok := statusOf(body); ok && code != 0 && code != http.StatusOK {
		apiErr := apiErrorFromBody(code, body)
		metrics.IncAPIError(method, "api")
		log.Warn("twitter.api.error",
			zap.Int("code", apiErr.Code),
			zap.String("description", apiErr.Description))
		return nil, apiErr
	}
	if status >= http.StatusBadRequest {
		apiErr := apiErrorFromBody(status, body)
		metrics.IncAPIError(method, "api")
		log.Warn("twitter.api.http_error",
			zap.Int("code", apiErr.Code),
			zap.String("description", apiErr.Description))
		return nil, apiErr
	}

	if body == nil {
		body = Response{}
	}
	return body, nil
}

// bearerToken prefers the configured token and otherwise performs one
// client-credentials exchange.
func (c *Client) bearerToken(ctx context.Context, appID string) (string, error) {
	if c.creds == nil {
		return "", &ConfigError{Field: "bearerToken", Err: errors.New("no credentials resolver")}
	}
	creds, err := c.creds.Resolve(ctx, appID)
	if err != nil {
		return "", &ConfigError{Field: "bearerToken", Err: err}
	}
	if creds.BearerToken != "" {
		return creds.BearerToken, nil
	}

	token, err := c.ObtainBearerToken(ctx, creds)
	if err != nil || token == "" {
		return "", &ConfigError{Field: "bearerToken", Err: err}
	}
	return token, nil
}

// setHeaders sets required headers for X API requests.
func (c *Client) setHeaders(req *http.Request, bearerToken string) {
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
}
