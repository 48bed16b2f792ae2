package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Credentials sources accepted in CREDENTIALS_SOURCE.
const (
	CredentialsFromEnv = "env"
	CredentialsFromAWS = "aws"
)

// Config holds the runtime configuration for the twitter-api service.
type Config struct {
	ServiceName string
	Env         string
	Venue       string
	LogLevel    string

	Port             int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// X API client settings.
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// CredentialsSource selects where app credentials come from.
	// "env" serves a single app from the TWITTER_* variables below;
	// "aws" resolves {env}/{appID}/twitter from AWS Secrets Manager.
	CredentialsSource string
	AppID             string
	APIKey            string
	Secret            string
	BearerToken       string

	AWSRegion   string
	CacheTTL    time.Duration
	CleanupFreq time.Duration
}

// Load loads configuration from environment variables and optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:       GetEnv("SERVICE_NAME", "twitter-api"),
		Env:               GetEnv("ENV", "dev"),
		Venue:             "twitter",
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		Port:              GetEnvInt("PORT", 9040),
		HTTPReadTimeout:   GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout:  GetEnvDuration("HTTP_WRITE_TIMEOUT", 35*time.Second),
		HTTPIdleTimeout:   GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		BaseURL:           GetEnv("TWITTER_BASE_URL", "https://api.x.com"),
		UserAgent:         GetEnv("TWITTER_USER_AGENT", "Qbix"),
		Timeout:           GetEnvDuration("TWITTER_TIMEOUT", 30*time.Second),
		CredentialsSource: GetEnv("CREDENTIALS_SOURCE", CredentialsFromEnv),
		AppID:             GetEnv("TWITTER_APP_ID", "default"),
		APIKey:            GetEnv("TWITTER_API_KEY", ""),
		Secret:            GetEnv("TWITTER_SECRET", ""),
		BearerToken:       GetEnv("TWITTER_BEARER_TOKEN", ""),
		AWSRegion:         GetEnv("AWS_REGION", "us-east-2"),
		CacheTTL:          GetEnvDuration("CACHE_TTL", 24*time.Hour),
		CleanupFreq:       GetEnvDuration("CACHE_CLEANUP_FREQ", 10*time.Minute),
	}
}
