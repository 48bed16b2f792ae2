package secrets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	pkgsecrets "github.com/Qbix/Twitter/pkg/secrets"
)

// Resolver resolves per-app configuration from a secrets Provider,
// caching results locally to reduce API calls. It is generic over the
// resolved config type T.
//
// Secret naming convention: {env}/{appID}/{venue}
type Resolver[T any] struct {
	logger   *zap.Logger
	env      string
	venue    string
	provider pkgsecrets.Provider
	cache    *pkgsecrets.Cache[T]
}

// NewResolver constructs a generic per-app config resolver.
func NewResolver[T any](
	logger *zap.Logger,
	env string,
	venue string,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[T],
) *Resolver[T] {
	return &Resolver[T]{
		logger:   logger,
		env:      env,
		venue:    venue,
		provider: provider,
		cache:    cache,
	}
}

func (r *Resolver[T]) cacheKey(appID string) string {
	return strings.ToLower(fmt.Sprintf("%s|%s", appID, r.venue))
}

// SecretName returns the secret holding an app's config.
func (r *Resolver[T]) SecretName(appID string) string {
	return strings.ToLower(fmt.Sprintf("%s/%s/%s", r.env, appID, r.venue))
}

// Resolve fetches or caches config T for appID.
// parse extracts T from the raw secret map and validates required fields.
func (r *Resolver[T]) Resolve(ctx context.Context, appID string, parse func(map[string]string) (T, error)) (T, error) {
	var zero T
	if appID == "" {
		return zero, fmt.Errorf("resolve app config: empty app id")
	}

	key := r.cacheKey(appID)
	if cfg, ok := r.cache.Get(key); ok {
		return cfg, nil
	}

	secretName := r.SecretName(appID)
	secretMap, err := r.provider.GetSecret(ctx, secretName)
	if err != nil {
		r.logger.Warn("secrets.fetch_failed",
			zap.String("key", secretName),
			zap.Error(err))
		return zero, fmt.Errorf("resolve app config for %q: %w", appID, err)
	}

	cfg, err := parse(secretMap)
	if err != nil {
		return zero, fmt.Errorf("parse secret %q: %w", secretName, err)
	}

	r.cache.Put(key, cfg)

	r.logger.Info("secrets.app_config_resolved",
		zap.String("app", appID),
		zap.String("venue", r.venue))
	return cfg, nil
}

// DiscoverApps lists the app IDs that have a secret for this venue.
// It searches for "{env}/" prefixed names ending in "/{venue}".
func (r *Resolver[T]) DiscoverApps(ctx context.Context) ([]string, error) {
	prefix := strings.ToLower(r.env + "/")
	suffix := "/" + strings.ToLower(r.venue)

	names, err := r.provider.ListSecrets(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("discover apps: %w", err)
	}

	var apps []string
	for _, name := range names {
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, prefix) || !strings.HasSuffix(lower, suffix) {
			continue
		}
		trimmed := strings.TrimSuffix(strings.TrimPrefix(lower, prefix), suffix)
		if trimmed != "" && !strings.Contains(trimmed, "/") {
			apps = append(apps, trimmed)
		}
	}

	r.logger.Info("secrets.apps_discovered",
		zap.Int("count", len(apps)),
		zap.Strings("apps", apps))
	return apps, nil
}
