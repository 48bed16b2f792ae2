package twitter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingConfig is matched by every *ConfigError.
	ErrMissingConfig = errors.New("missing configuration")

	// ErrNotBearer is returned when the token endpoint issues a non-bearer token.
	ErrNotBearer = errors.New("token endpoint did not return a bearer token")
)

// ConfigError reports a configuration value that could not be obtained.
// It is fatal for the call and never retried.
type ConfigError struct {
	Field string
	Err   error // underlying cause, may be nil
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing field: %s: %v", e.Field, e.Err)
	}
	return "missing field: " + e.Field
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMissingConfig, e.Err}
	}
	return []error{ErrMissingConfig}
}

// APIError is a non-200 status reported by the X API.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Description)
}

// ValidationError reports caller input rejected before any request is made.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: empty", e.Field)
	}
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// apiErrorFromBody builds an APIError from a decoded error payload.
// The description is taken from "detail", then "title", then the first
// entry of "errors", falling back to the HTTP status text.
func apiErrorFromBody(code int, body Response) *APIError {
	return &APIError{Code: code, Description: describe(code, body)}
}

func describe(code int, body Response) string {
	for _, key := range []string{"detail", "title"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	for _, e := range body.Errors() {
		for _, key := range []string{"message", "detail", "title"} {
			if s, ok := e[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "unknown error"
}

// statusOf extracts a numeric "status" member from a decoded body.
func statusOf(body Response) (int, bool) {
	switch v := body["status"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
