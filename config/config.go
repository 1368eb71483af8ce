package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string // listen address for the reply endpoint
	AuthToken        string // optional bearer token for the HTTP surface
	LLMProvider      string // anthropic, openai, ollama
	AnthropicKey     string // API key (X-Api-Key header)
	AnthropicToken   string // OAuth token (Authorization: Bearer header)
	OpenAIKey        string
	LLMModel         string
	OllamaBaseURL    string
	DiscordToken     string
	WebhookURL       string
	DatabasePath     string
	Timezone         string // default zone when a request carries none
	Style            string // reply style: friendly, concise, coach
	PreferredName    string
	DigestCron       string
	MaxContextTokens int
	CollabTimeout    time.Duration // per external-collaborator call
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		HTTPAddr:         envOr("HTTP_ADDR", ":8487"),
		AuthToken:        os.Getenv("AUTH_TOKEN"),
		LLMProvider:      envOr("LLM_PROVIDER", "anthropic"),
		AnthropicKey:     os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicToken:   os.Getenv("ANTHROPIC_AUTH_TOKEN"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		OllamaBaseURL:    envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		DiscordToken:     os.Getenv("DISCORD_BOT_TOKEN"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
		DatabasePath:     envOr("DATABASE_PATH", "./data.db"),
		Timezone:         envOr("TIMEZONE", "UTC"),
		Style:            envOr("STYLE", "friendly"),
		PreferredName:    os.Getenv("PREFERRED_NAME"),
		DigestCron:       envOr("DIGEST_CRON", "0 8 * * *"),
		MaxContextTokens: envIntOr("MAX_CONTEXT_TOKENS", 16000),
		CollabTimeout:    time.Duration(envIntOr("COLLAB_TIMEOUT_MS", 5000)) * time.Millisecond,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
