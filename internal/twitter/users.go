package twitter

import (
	"context"
	"regexp"
)

// maxUsernameLen bounds a normalized username in bytes.
const maxUsernameLen = 200

var usernameDisallowed = regexp.MustCompile(`[^A-Za-z0-9]+`)

// NormalizeUsername collapses every run of characters outside [A-Za-z0-9]
// into a single underscore and truncates the result to 200 bytes. Case is
// preserved.
func NormalizeUsername(username string) string {
	n := usernameDisallowed.ReplaceAllString(username, "_")
	if len(n) > maxUsernameLen {
		n = n[:maxUsernameLen]
	}
	return n
}

// IsValidUsername reports whether username is already in normalized form.
func IsValidUsername(username string) bool {
	return username != "" && username == NormalizeUsername(username)
}

// UsersByUsernames looks up users by their usernames, which must already be
// sanitized. When no fields are given, DefaultUserFields are requested.
// GET /2/users/by?usernames=a,b&user.fields=...
func (c *Client) UsersByUsernames(ctx context.Context, appID string, usernames []string, fields ...string) (Response, error) {
	if len(usernames) == 0 {
		return nil, &ValidationError{Field: "usernames"}
	}
	for _, u := range usernames {
		if !IsValidUsername(u) {
			return nil, &ValidationError{Field: "username", Value: u}
		}
	}
	if len(fields) == 0 {
		fields = DefaultUserFields
	}
	return c.API(ctx, appID, "users/by", nil, usersByParams(usernames, fields))
}

func usersByParams(usernames, fields []string) Params {
	var p Params
	p.Set("usernames", usernames...)
	p.Set("user.fields", fields...)
	return p
}
