// Package config loads all settings from the environment. The CLI and the
// stub backend share one loader; each main reads only its own section.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting of the project.
type Config struct {
	Client ClientConfig
	Stub   StubConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	client, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	stub, err := loadStubConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Client: client, Stub: stub}, nil
}

// ClientConfig drives the CLI and the client SDK.
type ClientConfig struct {
	// BaseURL is the API root including the /api prefix.
	BaseURL string
	// Timeout bounds each HTTP call; there is no retry on top.
	Timeout time.Duration
	// TokenPath overrides where the bearer token is persisted. Empty means
	// the default location under the user config directory.
	TokenPath string
}

func loadClientConfig() (ClientConfig, error) {
	timeout := 30 * time.Second
	if override, err := parseOptionalIntEnv("SAGE_HTTP_TIMEOUT"); err != nil {
		return ClientConfig{}, err
	} else if override != nil {
		if *override <= 0 {
			return ClientConfig{}, fmt.Errorf("SAGE_HTTP_TIMEOUT must be positive, got %d", *override)
		}
		timeout = time.Duration(*override) * time.Second
	}

	return ClientConfig{
		BaseURL:   getEnvOrDefault("SAGE_API_BASE_URL", "http://localhost:8080/api"),
		Timeout:   timeout,
		TokenPath: strings.TrimSpace(os.Getenv("SAGE_TOKEN_PATH")),
	}, nil
}

// StubConfig describes the local development backend.
type StubConfig struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration
	AI        AIConfig
}

func loadStubConfig() (StubConfig, error) {
	addr, err := loadListenAddr()
	if err != nil {
		return StubConfig{}, err
	}

	ttl := 24 * time.Hour
	if override, err := parseOptionalIntEnv("STUB_TOKEN_TTL"); err != nil {
		return StubConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return StubConfig{}, fmt.Errorf("STUB_TOKEN_TTL must be at least 1 hour, got %d", *override)
		}
		ttl = time.Duration(*override) * time.Hour
	}

	ai, err := loadAIConfig()
	if err != nil {
		return StubConfig{}, err
	}

	return StubConfig{
		Addr:      addr,
		JWTSecret: getEnvOrDefault("STUB_JWT_SECRET", "sage-dev-secret"),
		TokenTTL:  ttl,
		AI:        ai,
	}, nil
}

func loadListenAddr() (string, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// AIConfig holds the optional Ark model settings for the stub backend.
// Without credentials the stub falls back to canned replies.
type AIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	MaxTokens   *int
}

// Enabled reports whether a real model can be constructed.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && c.APIKey != ""
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: set ARK_API_KEY and ARK_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
