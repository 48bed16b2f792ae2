package twitter

import (
	"context"
	"fmt"
	"strings"
)

//
// ────────────────────────────────────────────────
//   App Credentials (per-app, from env or AWS SM)
// ────────────────────────────────────────────────
//

// AppCredentials holds the X API credentials for a single application.
// Secret format: {"api_key": "...", "secret": "...", "bearer_token": "..."}
type AppCredentials struct {
	AppID       string
	APIKey      string // consumer key, used for the client-credentials exchange
	Secret      string // consumer secret
	BearerToken string // optional; when empty a token is obtained per call
}

// CredentialsResolver resolves the credentials of an application by its ID.
type CredentialsResolver interface {
	Resolve(ctx context.Context, appID string) (*AppCredentials, error)
}

// StaticCredentials is a CredentialsResolver backed by an in-memory map.
// Keys are matched case-insensitively.
type StaticCredentials map[string]AppCredentials

// NewStaticCredentials builds a StaticCredentials from the given entries.
func NewStaticCredentials(creds ...AppCredentials) StaticCredentials {
	s := make(StaticCredentials, len(creds))
	for _, c := range creds {
		s[strings.ToLower(c.AppID)] = c
	}
	return s
}

// Resolve implements CredentialsResolver.
func (s StaticCredentials) Resolve(_ context.Context, appID string) (*AppCredentials, error) {
	c, ok := s[strings.ToLower(appID)]
	if !ok {
		return nil, fmt.Errorf("no credentials configured for app %q", appID)
	}
	return &c, nil
}

//
// ────────────────────────────────────────────────
//   API Response
// ────────────────────────────────────────────────
//

// Response is a decoded JSON body returned by the X API. Callers interpret
// the "data", "includes", "errors" and "meta" members themselves.
type Response map[string]any

// Data returns the "data" member of the response, if any.
func (r Response) Data() any {
	return r["data"]
}

// Errors returns the "errors" member of the response as a list of objects.
func (r Response) Errors() []map[string]any {
	raw, ok := r["errors"].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// tokenTypeBearer is the only token type accepted from the token endpoint.
const tokenTypeBearer = "bearer"

var (
	// DefaultUserFields is requested when the caller does not restrict user fields.
	DefaultUserFields = []string{
		"created_at", "description", "entities", "id", "location",
		"most_recent_tweet_id", "name", "pinned_tweet_id",
		"profile_image_url", "protected", "public_metrics", "url",
		"username", "verified", "verified_type", "withheld",
	}

	// DefaultExpansions is requested by SearchRecentTweets unless overridden.
	DefaultExpansions = []string{
		"attachments.poll_ids", "attachments.media_keys", "author_id",
		"edit_history_tweet_ids", "entities.mentions.username",
		"geo.place_id", "in_reply_to_user_id", "referenced_tweets.id",
		"referenced_tweets.id.author_id",
	}
)
