package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	OpenAI     OpenAIConfig
	Similarity SimilarityConfig
	Resolver   ResolverConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type OpenAIConfig struct {
	APIKey      string
	APIEndpoint string
	Model       string
}

type SimilarityConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type ResolverConfig struct {
	// BatchConcurrency caps concurrent ticket resolutions in batch mode.
	// Zero means unlimited.
	BatchConcurrency int
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")

	v.SetDefault("openai.endpoint", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4-turbo-preview")

	v.SetDefault("similarity.endpoint", "https://api-inference.huggingface.co/models/sentence-transformers/all-MiniLM-L6-v2")
	v.SetDefault("similarity.timeout", "30s")

	v.SetDefault("resolver.batch_concurrency", 0)

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("server.host"),
			Port:         v.GetString("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      v.GetString("openai.api_key"),
			APIEndpoint: v.GetString("openai.endpoint"),
			Model:       v.GetString("openai.model"),
		},
		Similarity: SimilarityConfig{
			Endpoint: v.GetString("similarity.endpoint"),
			APIKey:   v.GetString("similarity.api_key"),
			Timeout:  v.GetDuration("similarity.timeout"),
		},
		Resolver: ResolverConfig{
			BatchConcurrency: v.GetInt("resolver.batch_concurrency"),
		},
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	slog.Info("configuration loaded successfully")
	return cfg, nil
}
