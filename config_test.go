package plume

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.API.Timeout != 150*time.Second {
		t.Fatalf("API.Timeout = %v, want 150s", cfg.API.Timeout)
	}
	if cfg.API.BaseURL == "" {
		t.Fatal("API.BaseURL must have a default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.baseUrl"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"zero page size", func(c *Config) { c.Form.DefaultPageSize = 0 }, "form.defaultPageSize"},
		{"max below default", func(c *Config) { c.Form.MaxPageSize = 10 }, "form.maxPageSize"},
		{"cache scopes", func(c *Config) { c.Cache.MaxScopes = 0 }, "cache.maxScopes"},
		{"cache per scope", func(c *Config) { c.Cache.MaxPerScope = 0 }, "cache.maxPerScope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			ce, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if ce.Field != tt.wantField {
				t.Fatalf("ConfigError.Field = %q, want %q", ce.Field, tt.wantField)
			}
		})
	}
}

func TestClampPageSize(t *testing.T) {
	form := DefaultConfig().Form

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero falls back to default", 0, 50},
		{"negative falls back to default", -5, 50},
		{"in range passes through", 25, 25},
		{"above max is capped", 500, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := form.ClampPageSize(tt.requested); got != tt.want {
				t.Fatalf("ClampPageSize(%d) = %d, want %d", tt.requested, got, tt.want)
			}
		})
	}
}

func TestConfigValidateDisabledCacheSkipsCacheChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Cache.MaxScopes = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil when cache disabled", err)
	}
}
