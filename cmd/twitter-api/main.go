package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Qbix/Twitter/internal/api"
	"github.com/Qbix/Twitter/internal/httpclient"
	internalsecrets "github.com/Qbix/Twitter/internal/secrets"
	"github.com/Qbix/Twitter/internal/twitter"
	"github.com/Qbix/Twitter/pkg/config"
	"github.com/Qbix/Twitter/pkg/logger"
	"github.com/Qbix/Twitter/pkg/secrets"
	"github.com/Qbix/Twitter/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [twitter-api]...")

	stopCleaner := make(chan struct{})

	// --- App credentials ---
	var creds twitter.CredentialsResolver
	switch cfg.CredentialsSource {
	case config.CredentialsFromAWS:
		awsProvider, err := secrets.NewAWSProvider(ctx, cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to create AWS Secrets Manager provider", "error", err)
		}
		credsCache := secrets.NewCache[twitter.AppCredentials](cfg.CacheTTL)
		go credsCache.StartCleaner(cfg.CleanupFreq, stopCleaner)

		resolver := internalsecrets.NewAppResolver(logg.Desugar(), cfg.Env, awsProvider, credsCache)
		apps, err := resolver.DiscoverApps(ctx)
		if err != nil {
			logg.Warnw("failed to discover apps from AWS Secrets Manager", "error", err)
		} else {
			logg.Infow("discovered twitter apps", "count", len(apps), "apps", apps)
		}
		creds = resolver
	case config.CredentialsFromEnv:
		if cfg.BearerToken == "" && (cfg.APIKey == "" || cfg.Secret == "") {
			logg.Warnw("no bearer token or api key/secret configured; calls will fail", "app", cfg.AppID)
		}
		logg.Infow("using env credentials",
			"app", cfg.AppID,
			"api_key", utils.MaskSecret(cfg.APIKey),
			"bearer_token", utils.MaskSecret(cfg.BearerToken))
		creds = twitter.NewStaticCredentials(twitter.AppCredentials{
			AppID:       cfg.AppID,
			APIKey:      cfg.APIKey,
			Secret:      cfg.Secret,
			BearerToken: cfg.BearerToken,
		})
	default:
		logg.Fatalw("unknown CREDENTIALS_SOURCE", "value", cfg.CredentialsSource)
	}

	// --- X API client ---
	client := twitter.NewClient(logg.Desugar(), twitter.Config{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
	}, creds, httpclient.NewHTTPClient(cfg.Timeout))

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	})

	handler := api.NewTwitterHandler(logg.Desugar(), client, cfg.AppID)
	api.RegisterRoutes(app, handler)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[twitter-api] running",
		"env", cfg.Env,
		"base_url", cfg.BaseURL,
		"credentials", cfg.CredentialsSource)

	<-ctx.Done()
	logg.Info("shutting down [twitter-api]...")

	close(stopCleaner)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
}
