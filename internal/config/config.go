// Package config provides configuration loading and validation for the worker.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the worker configuration. Values come from an
// optional JSON file, then environment variables, then defaults.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty" validate:"required"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty" validate:"required"`      // Gemini API key

	// Model
	Provider string `json:"provider,omitempty"` // LLM provider (gemini)
	Model    string `json:"model,omitempty"`    // Model name override
	// Temperature is a pointer so an explicit 0 survives merging.
	Temperature *float32 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`

	// Batching
	BatchSize         int `json:"batch_size,omitempty" validate:"omitempty,min=1,max=50"`
	EntryDelaySecs    int `json:"entry_delay_secs,omitempty" validate:"min=0"`
	BatchDelaySecs    int `json:"batch_delay_secs,omitempty" validate:"min=0"`
	IdleSleepSecs     int `json:"idle_sleep_secs,omitempty" validate:"min=0"`
	RateLimitWaitSecs int `json:"rate_limit_wait_secs,omitempty" validate:"min=0"`

	// Content
	MinContentChars int `json:"min_content_chars,omitempty" validate:"min=0"`
	MaxContentChars int `json:"max_content_chars,omitempty" validate:"min=0"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA sites
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Default returns the configuration the worker runs with when nothing
// overrides it. Connection fields are empty and must come from the
// environment or a config file.
func Default() Config {
	return Config{
		Provider:          "gemini",
		BatchSize:         5,
		EntryDelaySecs:    20,
		BatchDelaySecs:    10,
		IdleSleepSecs:     60,
		RateLimitWaitSecs: 60,
		MinContentChars:   200,
		MaxContentChars:   40000,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills connection fields from the environment when they are
// not already set. Environment never overrides an explicit value.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return fmt.Errorf("config error: field '%s' failed '%s' validation", field.Field(), field.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.MaxContentChars > 0 && c.MinContentChars > c.MaxContentChars {
		return fmt.Errorf("config error: 'min_content_chars' exceeds 'max_content_chars'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}

	// Int fields: use default if zero
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.EntryDelaySecs == 0 {
		result.EntryDelaySecs = defaults.EntryDelaySecs
	}
	if result.BatchDelaySecs == 0 {
		result.BatchDelaySecs = defaults.BatchDelaySecs
	}
	if result.IdleSleepSecs == 0 {
		result.IdleSleepSecs = defaults.IdleSleepSecs
	}
	if result.RateLimitWaitSecs == 0 {
		result.RateLimitWaitSecs = defaults.RateLimitWaitSecs
	}
	if result.MinContentChars == 0 {
		result.MinContentChars = defaults.MinContentChars
	}
	if result.MaxContentChars == 0 {
		result.MaxContentChars = defaults.MaxContentChars
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Duration accessors.

func (c *Config) EntryDelay() time.Duration    { return time.Duration(c.EntryDelaySecs) * time.Second }
func (c *Config) BatchDelay() time.Duration    { return time.Duration(c.BatchDelaySecs) * time.Second }
func (c *Config) IdleSleep() time.Duration     { return time.Duration(c.IdleSleepSecs) * time.Second }
func (c *Config) RateLimitWait() time.Duration { return time.Duration(c.RateLimitWaitSecs) * time.Second }
