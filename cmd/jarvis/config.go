package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultGatewayBaseURL = "https://ai.gateway.lovable.dev"

type config struct {
	gatewayBaseURL string
	gatewayAPIKey  string
	model          string
	streamTimeout  time.Duration

	deepgramAPIKey string
	hindiVoice     string

	postgresDSN string
	userID      string
}

// loadConfig reads configuration from the environment, with a .env file as
// a fallback for local development.
func loadConfig() (*config, error) {
	_ = godotenv.Load()

	cfg := &config{
		gatewayBaseURL: envOr("GATEWAY_BASE_URL", defaultGatewayBaseURL),
		gatewayAPIKey:  os.Getenv("GATEWAY_API_KEY"),
		model:          os.Getenv("COMPLETION_MODEL"),
		streamTimeout:  2 * time.Minute,

		deepgramAPIKey: os.Getenv("DEEPGRAM_API_KEY"),
		hindiVoice:     os.Getenv("DEEPGRAM_HINDI_VOICE"),

		postgresDSN: os.Getenv("DATABASE_URL"),
		userID:      os.Getenv("JARVIS_USER_ID"),
	}

	if timeout := os.Getenv("STREAM_TIMEOUT"); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid STREAM_TIMEOUT: %w", err)
		}
		cfg.streamTimeout = parsed
	}

	if cfg.gatewayAPIKey == "" {
		return nil, fmt.Errorf("GATEWAY_API_KEY is required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
