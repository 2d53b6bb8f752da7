package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port             int              `json:"port"`
	LogConfig        logger.LogConfig `json:"log_config"`
	CORSAllowlist    []string         `json:"cors_allowlist"`
	RateLimitSeconds int              `json:"rate_limit_seconds"`
	WarmSpec         string           `json:"warm_spec"`
	AI               AIConfig         `json:"ai"`
}

type AIConfig struct {
	// Providers in priority order; later entries are fallbacks.
	Providers []AIProviderConfig `json:"providers"`
	ChatModel string             `json:"chat_model"`
	// EmbedModel selects the cost/quality tier for embeddings.
	EmbedModel         string `json:"embed_model"`
	ReplyCacheSize     int    `json:"reply_cache_size"`
	ReplyCacheTTLHours int    `json:"reply_cache_ttl_hours"`
}

type AIProviderConfig struct {
	Provider string                 `json:"provider"`
	Data     map[string]interface{} `json:"data"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if len(cfg.AI.Providers) == 0 {
		return nil, fmt.Errorf("ai.providers is required")
	}
	for i, provider := range cfg.AI.Providers {
		if provider.Provider == "" {
			return nil, fmt.Errorf("ai.providers[%d].provider is required", i)
		}
	}
	if cfg.AI.ChatModel == "" {
		cfg.AI.ChatModel = "gpt-4o-mini"
	}
	if cfg.AI.EmbedModel == "" {
		cfg.AI.EmbedModel = "text-embedding-3-small"
	}
	if cfg.AI.ReplyCacheSize == 0 {
		cfg.AI.ReplyCacheSize = 10000
	}
	if cfg.AI.ReplyCacheTTLHours == 0 {
		cfg.AI.ReplyCacheTTLHours = 2
	}
	if cfg.WarmSpec == "" {
		cfg.WarmSpec = "0 */6 * * *"
	}
	return &cfg, nil
}
