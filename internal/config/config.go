// Package config loads and validates pathscribe configuration from
// ~/.pathscribe/config.yaml, with environment-variable overrides layered
// on top and CLI flags taking final precedence in the command layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pathscribe/internal/annotate"
	"github.com/rshade/pathscribe/internal/kegg"
)

// CurrentSchemaVersion is the config schema version written by this
// build. Older files are upgraded by the migration package.
const CurrentSchemaVersion = "1.1.0"

// configDirName is the per-user configuration directory under $HOME.
const configDirName = ".pathscribe"

// Environment variable overrides.
const (
	EnvLogLevel    = "PATHSCRIBE_LOG_LEVEL"
	EnvLogFormat   = "PATHSCRIBE_LOG_FORMAT"
	EnvKeggBaseURL = "PATHSCRIBE_KEGG_BASE_URL"
)

// Config is the full pathscribe configuration.
type Config struct {
	Version string          `yaml:"version"`
	Pathway PathwaySettings `yaml:"pathway"`
	Kegg    KeggSettings    `yaml:"kegg"`
	Retry   RetrySettings   `yaml:"retry"`
	Logging LoggingSettings `yaml:"logging"`
}

// PathwaySettings controls annotation defaults.
type PathwaySettings struct {
	// Kind is the default pathway kind (ko, ec, metacyc).
	Kind string `yaml:"kind"`

	// SignificanceThreshold is the p_adjust cutoff for enrichment.
	SignificanceThreshold float64 `yaml:"significance_threshold"`

	// DfSizeLimit caps rows submitted for remote enrichment.
	DfSizeLimit int `yaml:"df_size_limit"`
}

// KeggSettings controls the KEGG REST client.
type KeggSettings struct {
	// Limit is the per-request id count. The service rejects more than
	// kegg.MaxIDsPerRequest, so this is not meant to be raised.
	Limit int `yaml:"limit"`

	// BaseURL overrides the KEGG endpoint, mainly for tests and mirrors.
	BaseURL string `yaml:"base_url"`
}

// RetrySettings bounds the per-chunk retry loop.
type RetrySettings struct {
	MaxAttempts   int      `yaml:"max_attempts"`
	InitialDelay  Duration `yaml:"initial_delay"`
	MaxDelay      Duration `yaml:"max_delay"`
	BackoffFactor float64  `yaml:"backoff_factor"`
}

// LoggingSettings controls log output.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentSchemaVersion,
		Pathway: PathwaySettings{
			Kind:                  string(annotate.KindKO),
			SignificanceThreshold: annotate.DefaultSignificanceThreshold,
			DfSizeLimit:           annotate.DefaultDfSizeLimit,
		},
		Kegg: KeggSettings{
			Limit:   kegg.MaxIDsPerRequest,
			BaseURL: kegg.DefaultBaseURL,
		},
		Retry: RetrySettings{
			MaxAttempts:   annotate.DefaultMaxAttempts,
			InitialDelay:  Duration(annotate.DefaultInitialDelay),
			MaxDelay:      Duration(annotate.DefaultMaxDelay),
			BackoffFactor: annotate.DefaultBackoffFactor,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

// Dir returns the per-user config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the user's config file, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFrom(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadFrom reads a config file from an explicit path. Missing keys keep
// their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c *Config) Validate() error {
	if _, err := annotate.ParsePathwayKind(c.Pathway.Kind); err != nil {
		return fmt.Errorf("pathway.kind: %w", err)
	}
	if c.Pathway.SignificanceThreshold <= 0 || c.Pathway.SignificanceThreshold > 1 {
		return fmt.Errorf("pathway.significance_threshold must be in (0, 1], got %g",
			c.Pathway.SignificanceThreshold)
	}
	if c.Pathway.DfSizeLimit < 1 {
		return fmt.Errorf("pathway.df_size_limit must be positive, got %d", c.Pathway.DfSizeLimit)
	}
	if c.Kegg.Limit < 1 || c.Kegg.Limit > kegg.MaxIDsPerRequest {
		return fmt.Errorf("kegg.limit must be between 1 and %d, got %d",
			kegg.MaxIDsPerRequest, c.Kegg.Limit)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be positive, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BackoffFactor < 1 {
		return fmt.Errorf("retry.backoff_factor must be >= 1, got %g", c.Retry.BackoffFactor)
	}
	return nil
}

// RetryPolicy converts the retry settings into the engine's policy type.
func (c *Config) RetryPolicy() annotate.RetryPolicy {
	return annotate.RetryPolicy{
		MaxAttempts:   c.Retry.MaxAttempts,
		InitialDelay:  c.Retry.InitialDelay.Std(),
		MaxDelay:      c.Retry.MaxDelay.Std(),
		BackoffFactor: c.Retry.BackoffFactor,
	}
}

// applyEnvOverrides layers environment variables over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvKeggBaseURL); v != "" {
		c.Kegg.BaseURL = v
	}
}
