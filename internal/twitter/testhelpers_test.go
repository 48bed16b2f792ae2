package twitter

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// mockTransport is an http.RoundTripper that delegates to a handler function
// and records every request it sees.
type mockTransport struct {
	mu       sync.Mutex
	fn       func(*http.Request) (*http.Response, error)
	requests []*http.Request
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.fn(req)
}

// paths returns "METHOD path" for each recorded request.
func (m *mockTransport) paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.requests))
	for i, r := range m.requests {
		out[i] = r.Method + " " + r.URL.Path
	}
	return out
}

// jsonResponse builds a fake *http.Response with the given status and JSON body.
func jsonResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic("test helper mustJSON: " + err.Error())
	}
	return string(b)
}

const testBaseURL = "https://api.test.x.com"

// newTestClient creates a Client whose HTTP traffic goes to fn.
func newTestClient(t *testing.T, creds CredentialsResolver, fn func(*http.Request) (*http.Response, error)) (*Client, *mockTransport) {
	t.Helper()
	mt := &mockTransport{fn: fn}
	c := NewClient(zap.NewNop(), Config{BaseURL: testBaseURL, UserAgent: "test-agent"}, creds, &http.Client{Transport: mt})
	return c, mt
}

func bearerCreds(appID, token string) StaticCredentials {
	return NewStaticCredentials(AppCredentials{AppID: appID, BearerToken: token})
}

func keyCreds(appID string) StaticCredentials {
	return NewStaticCredentials(AppCredentials{AppID: appID, APIKey: "key-" + appID, Secret: "secret-" + appID})
}
