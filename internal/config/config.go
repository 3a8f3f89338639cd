package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	StaticDir          string `yaml:"static_dir"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// RatingConfig is one parameter's threshold set as it appears in the config
// file. Keys in the weights and ratings maps are the canonical display names
// ("pH", "E. coli", "Total Dissolved Solids", ...).
type RatingConfig struct {
	Ideal    float64 `yaml:"ideal"`
	GoodLow  float64 `yaml:"good_low"`
	GoodHigh float64 `yaml:"good_high"`
	PoorLow  float64 `yaml:"poor_low"`
	PoorHigh float64 `yaml:"poor_high"`
	Unit     string  `yaml:"unit"`
}

// ScoringConfig overrides the rating catalog. Weights and Ratings replace the
// built-in tables wholesale when non-empty; there is no per-key merge. An
// invalid table (weights not summing to 1, missing parameters) is fatal at
// startup.
type ScoringConfig struct {
	FuzzyPHDO bool                    `yaml:"fuzzy_ph_do"`
	Weights   map[string]float64      `yaml:"weights"`
	Ratings   map[string]RatingConfig `yaml:"ratings"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8080,
			MetricsPort:        8081,
			RateLimitPerMinute: 120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AQUASCORE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("AQUASCORE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("AQUASCORE_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("AQUASCORE_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("AQUASCORE_FUZZY_PH_DO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scoring.FuzzyPHDO = b
		}
	}
	if v := os.Getenv("AQUASCORE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
