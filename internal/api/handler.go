package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Qbix/Twitter/internal/twitter"
)

// TwitterService defines the X API operations exposed over HTTP.
type TwitterService interface {
	UsersByUsernames(ctx context.Context, appID string, usernames []string, fields ...string) (twitter.Response, error)
	SearchRecentTweets(ctx context.Context, appID, query string, options twitter.Params) (twitter.Response, error)
}

// searchOptionKeys are the recent-search parameters passed through to the API.
var searchOptionKeys = []string{
	"expansions", "user.fields", "tweet.fields", "media.fields",
	"place.fields", "poll.fields", "max_results", "start_time",
	"end_time", "since_id", "until_id", "sort_order",
}

// TwitterHandler handles HTTP API requests for X operations.
type TwitterHandler struct {
	logger       *zap.Logger
	service      TwitterService
	defaultAppID string
}

// NewTwitterHandler creates a new TwitterHandler. defaultAppID is used when
// a request carries no appId.
func NewTwitterHandler(logger *zap.Logger, service TwitterService, defaultAppID string) *TwitterHandler {
	return &TwitterHandler{
		logger:       logger,
		service:      service,
		defaultAppID: defaultAppID,
	}
}

// UsersByUsernamesHandler handles GET /users/by?usernames=a,b[&fields=x,y].
func (h *TwitterHandler) UsersByUsernamesHandler(c *fiber.Ctx) error {
	appID := h.appID(c)
	if appID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "appId is required"})
	}
	usernames := splitList(c.Query("usernames"))
	if len(usernames) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "usernames is required"})
	}

	resp, err := h.service.UsersByUsernames(c.Context(), appID, usernames, splitList(c.Query("fields"))...)
	if err != nil {
		h.logger.Error("twitter.users_by.failed",
			zap.String("app", appID),
			zap.Strings("usernames", usernames),
			zap.Error(err))
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// SearchRecentTweetsHandler handles GET /tweets/search/recent?query=...
// A search option given with an empty value (e.g. "expansions=") disables
// that option's default.
func (h *TwitterHandler) SearchRecentTweetsHandler(c *fiber.Ctx) error {
	appID := h.appID(c)
	if appID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "appId is required"})
	}
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
	}

	args := c.Context().QueryArgs()
	var options twitter.Params
	for _, key := range searchOptionKeys {
		if args.Has(key) {
			options.Set(key, splitList(c.Query(key))...)
		}
	}

	resp, err := h.service.SearchRecentTweets(c.Context(), appID, query, options)
	if err != nil {
		h.logger.Error("twitter.search_recent.failed",
			zap.String("app", appID),
			zap.String("query", query),
			zap.Error(err))
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *TwitterHandler) appID(c *fiber.Ctx) string {
	if id := c.Query("appId"); id != "" {
		return id
	}
	return h.defaultAppID
}

// writeError maps client error kinds to HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	var (
		vErr   *twitter.ValidationError
		cfgErr *twitter.ConfigError
		apiErr *twitter.APIError
	)
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &cfgErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &apiErr):
		code := apiErr.Code
		if code < 400 || code > 599 {
			code = fiber.StatusBadGateway
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error(), "code": apiErr.Code})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
}

// splitList splits a comma-separated query value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
