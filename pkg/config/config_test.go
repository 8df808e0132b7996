package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
environment: test
server:
  port: 8090
  read_timeout: 10s
  write_timeout: 10s
  shutdown_timeout: 15s
logging:
  level: info
  format: console
  output: stdout
models:
  dir: ./models
forecast:
  cache_enabled: true
  cache_backend: memory
  cache_ttl: 10m
audit:
  backend: none
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Forecast.CacheTTL != 10*time.Minute {
		t.Errorf("cache_ttl = %v, want 10m", cfg.Forecast.CacheTTL)
	}
	if cfg.Models.Mock {
		t.Error("mock should default to false")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("MODELS_DIR", "/opt/models")
	t.Setenv("MODELS_MOCK", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Models.Dir != "/opt/models" {
		t.Errorf("models.dir = %q, want /opt/models", cfg.Models.Dir)
	}
	if !cfg.Models.Mock {
		t.Error("expected mock override")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing environment", func(c *Config) { c.Environment = "" }, true},
		{"missing models dir", func(c *Config) { c.Models.Dir = "" }, true},
		{"mock without dir", func(c *Config) { c.Models.Dir = ""; c.Models.Mock = true }, false},
		{"bad audit backend", func(c *Config) { c.Audit.Backend = "sqs" }, true},
		{"kafka without brokers", func(c *Config) { c.Audit.Backend = "kafka" }, true},
		{"bad cache backend", func(c *Config) { c.Forecast.CacheBackend = "disk" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, sampleYAML))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
