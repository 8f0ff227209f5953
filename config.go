package plume

import (
	"time"
)

// Config consolidates the console's client settings
type Config struct {
	API     APIConfig     `json:"api"`
	Cache   CacheConfig   `json:"cache"`
	Form    FormConfig    `json:"form"`
	Logging LoggingConfig `json:"logging"`
}

// APIConfig contains remote CMS API settings. Retries are not configured
// here: failed requests surface to the operator, and any retry policy
// belongs to the transport behind the client.
type APIConfig struct {
	BaseURL   string        `json:"baseUrl"`
	Token     string        `json:"token"`
	Timeout   time.Duration `json:"timeout"`
	UserAgent string        `json:"userAgent"`
}

// CacheConfig contains the client-side record cache settings
type CacheConfig struct {
	Enabled      bool          `json:"enabled"`
	TTL          time.Duration `json:"ttl"`
	MaxScopes    int           `json:"maxScopes"`
	MaxPerScope  int           `json:"maxPerScope"`
	StaleAllowed bool          `json:"staleAllowed"`
}

// FormConfig contains form session settings
type FormConfig struct {
	DefaultPageSize  int  `json:"defaultPageSize"`
	MaxPageSize      int  `json:"maxPageSize"`
	ValidateOnChange bool `json:"validateOnChange"`
}

// ClampPageSize resolves a requested entry-list page size: zero or negative
// falls back to the default, anything above the maximum is capped.
func (f FormConfig) ClampPageSize(requested int) int {
	if requested <= 0 {
		return f.DefaultPageSize
	}
	if f.MaxPageSize > 0 && requested > f.MaxPageSize {
		return f.MaxPageSize
	}
	return requested
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:4005",
			Timeout:   150 * time.Second,
			UserAgent: "plume-console",
		},
		Cache: CacheConfig{
			Enabled:     true,
			TTL:         5 * time.Minute,
			MaxScopes:   100,
			MaxPerScope: 1000,
		},
		Form: FormConfig{
			DefaultPageSize:  50,
			MaxPageSize:      100,
			ValidateOnChange: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "api.baseUrl", Message: "must not be empty"}
	}

	if c.API.Timeout <= 0 {
		return &ConfigError{Field: "api.timeout", Message: "must be greater than 0"}
	}

	if c.Form.DefaultPageSize <= 0 {
		return &ConfigError{Field: "form.defaultPageSize", Message: "must be greater than 0"}
	}

	if c.Form.MaxPageSize < c.Form.DefaultPageSize {
		return &ConfigError{Field: "form.maxPageSize", Message: "must be greater than or equal to defaultPageSize"}
	}

	if c.Cache.Enabled {
		if c.Cache.MaxScopes <= 0 {
			return &ConfigError{Field: "cache.maxScopes", Message: "must be greater than 0"}
		}
		if c.Cache.MaxPerScope <= 0 {
			return &ConfigError{Field: "cache.maxPerScope", Message: "must be greater than 0"}
		}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return "config validation error for field '" + e.Field + "': " + e.Message
}
