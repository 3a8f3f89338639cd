package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"AQUASCORE_PORT", "AQUASCORE_METRICS_PORT", "AQUASCORE_STATIC_DIR",
		"AQUASCORE_RATE_LIMIT_PER_MINUTE", "AQUASCORE_FUZZY_PH_DO", "AQUASCORE_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8081 {
		t.Errorf("expected metrics port 8081, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimitPerMinute != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimitPerMinute)
	}
	if cfg.Server.StaticDir != "" {
		t.Errorf("expected empty static dir, got %q", cfg.Server.StaticDir)
	}
	if cfg.Scoring.FuzzyPHDO {
		t.Error("expected fuzzy_ph_do=false by default")
	}
	if len(cfg.Scoring.Weights) != 0 {
		t.Errorf("expected no weight overrides, got %d", len(cfg.Scoring.Weights))
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got %q", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
server:
  port: 9000
  static_dir: /srv/aquascore/dist
scoring:
  fuzzy_ph_do: true
  weights:
    pH: 0.5
    Turbidity: 0.5
  ratings:
    pH:
      ideal: 7.2
      good_low: 6.8
      good_high: 8.2
      poor_low: 6.0
      poor_high: 9.0
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8081 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.StaticDir != "/srv/aquascore/dist" {
		t.Errorf("expected static dir, got %q", cfg.Server.StaticDir)
	}
	if !cfg.Scoring.FuzzyPHDO {
		t.Error("expected fuzzy_ph_do=true")
	}
	if cfg.Scoring.Weights["pH"] != 0.5 {
		t.Errorf("expected pH weight 0.5, got %v", cfg.Scoring.Weights["pH"])
	}
	if cfg.Scoring.Ratings["pH"].Ideal != 7.2 {
		t.Errorf("expected pH ideal 7.2, got %v", cfg.Scoring.Ratings["pH"].Ideal)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Logging.Level)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AQUASCORE_PORT", "9100")
	t.Setenv("AQUASCORE_METRICS_PORT", "9101")
	t.Setenv("AQUASCORE_STATIC_DIR", "/tmp/dist")
	t.Setenv("AQUASCORE_RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("AQUASCORE_FUZZY_PH_DO", "true")
	t.Setenv("AQUASCORE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9101 {
		t.Errorf("expected metrics port 9101, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.StaticDir != "/tmp/dist" {
		t.Errorf("expected static dir '/tmp/dist', got %q", cfg.Server.StaticDir)
	}
	if cfg.Server.RateLimitPerMinute != 30 {
		t.Errorf("expected rate limit 30, got %d", cfg.Server.RateLimitPerMinute)
	}
	if !cfg.Scoring.FuzzyPHDO {
		t.Error("expected fuzzy_ph_do=true")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
