package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port             int                `json:"port"`
	JWTSecret        string             `json:"jwt_secret"`
	JWTTTLHours      int                `json:"jwt_ttl_hours"`
	RateLimitSeconds int                `json:"rate_limit_seconds"`
	LogConfig        logger.LogConfig   `json:"log_config"`
	IndexStore       IndexStoreConfig   `json:"index_store"`
	SessionStore     SessionStoreConfig `json:"session_store"`
	AI               AIConfig           `json:"ai"`
	Retrieval        RetrievalConfig    `json:"retrieval"`
}

type IndexStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type SessionStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AIConfig struct {
	Provider      string      `json:"provider"`
	EmbedProvider string      `json:"embed_provider"`
	Data          interface{} `json:"data"`
	Model         string      `json:"model"`
	EmbedModel    string      `json:"embed_model"`
	Timeout       int         `json:"timeout"`
	MaxInputChars int         `json:"max_input_chars"`
}

type RetrievalConfig struct {
	TopK             int `json:"top_k"`
	IndexCacheSize   int `json:"index_cache_size"`
	IndexCacheTTLMin int `json:"index_cache_ttl_minutes"`
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
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.IndexStore.Type == "" {
		return nil, fmt.Errorf("index_store.type is required")
	}
	if cfg.SessionStore.Type == "" {
		return nil, fmt.Errorf("session_store.type is required")
	}
	if cfg.AI.Provider == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.EmbedProvider == "" {
		cfg.AI.EmbedProvider = cfg.AI.Provider
	}
	if cfg.AI.Model == "" {
		return nil, fmt.Errorf("ai.model is required")
	}
	if cfg.AI.EmbedModel == "" {
		return nil, fmt.Errorf("ai.embed_model is required")
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 4
	}
	return &cfg, nil
}
