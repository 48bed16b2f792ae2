package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/Qbix/Twitter/internal/metrics"
)

// DefaultTimeout bounds every outbound call.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient returns a client with the given timeout that closes the
// connection after each request.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true
	return &http.Client{Timeout: timeout, Transport: transport}
}

// StatusError is returned when a failure response carries a body that is
// not valid JSON.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// Executor performs a single HTTP exchange and JSON-decodes the body.
// It never retries; the caller decides what a status code means.
type Executor struct {
	logger *zap.Logger
	http   *http.Client
	tag    string
}

// New creates an Executor. If httpClient is nil a non-persistent client
// with DefaultTimeout is used.
func New(logger *zap.Logger, httpClient *http.Client, tag string) *Executor {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &Executor{
		logger: logger,
		http:   httpClient,
		tag:    tag,
	}
}

// HTTPClient returns the underlying client.
func (e *Executor) HTTPClient() *http.Client {
	return e.http
}

// DoJSON executes req and decodes the response body into out. It returns
// the HTTP status code. endpoint labels the request in metrics and logs.
func (e *Executor) DoJSON(ctx context.Context, req *http.Request, endpoint string, out any) (int, error) {
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := e.http.Do(req)
	if err != nil {
		metrics.IncAPIRequest(endpoint, req.Method, "error")
		e.logger.Warn(e.tag+".http_failed",
			zap.String("url", req.URL.Redacted()),
			zap.Error(err))
		return 0, fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	elapsed := time.Since(start)
	metrics.IncAPIRequest(endpoint, req.Method, strconv.Itoa(resp.StatusCode))
	metrics.ObserveDuration(metrics.APIRequestDuration, start, endpoint, req.Method)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			e.logger.Warn(e.tag+".decode_failed",
				zap.Error(err),
				zap.String("url", req.URL.Redacted()),
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(body)))
			if resp.StatusCode >= 400 {
				return resp.StatusCode, &StatusError{Code: resp.StatusCode, Body: string(body)}
			}
			return resp.StatusCode, fmt.Errorf("decode failed: %w", err)
		}
	}

	e.logger.Debug(e.tag+".http_done",
		zap.String("url", req.URL.Redacted()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return resp.StatusCode, nil
}

// readBody reads the response body, inflating it when the server honoured
// an explicit Accept-Encoding: gzip.
func readBody(resp *http.Response) ([]byte, error) {
	if resp.Header.Get("Content-Encoding") != "gzip" || resp.Uncompressed {
		return io.ReadAll(resp.Body)
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer func() { _ = zr.Close() }()
	return io.ReadAll(zr)
}
