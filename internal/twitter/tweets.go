package twitter

import "context"

// SearchRecentTweets searches tweets from the last seven days. query uses
// the X search syntax (keywords, hashtags, operators). user.fields and
// expansions default to DefaultUserFields and DefaultExpansions unless the
// caller sets them; setting one to an empty list omits it from the request.
// Build options with SearchParams or pass nil.
// GET /2/tweets/search/recent?query=...
func (c *Client) SearchRecentTweets(ctx context.Context, appID, query string, options Params) (Response, error) {
	if query == "" {
		return nil, &ValidationError{Field: "query"}
	}
	return c.API(ctx, appID, "tweets/search/recent", nil, searchParams(query, options))
}

// searchParams puts query first, then the caller's options in order, then
// any defaults that were not overridden.
func searchParams(query string, options Params) Params {
	p := Params{{Key: "query", Values: []string{query}}}
	for _, f := range options {
		if f.Key == "query" {
			continue
		}
		p = append(p, Param{Key: f.Key, Values: f.Values})
	}
	p.SetDefault("user.fields", DefaultUserFields...)
	p.SetDefault("expansions", DefaultExpansions...)
	return p
}
