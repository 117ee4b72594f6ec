// Package config provides configuration management for the collection pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL           = errors.New("collector.search.base_url is required")
	ErrInvalidMaxPages          = errors.New("collector.search.max_pages must be at least 1")
	ErrInvalidTargetListings    = errors.New("collector.search.target_listings must be at least 1")
	ErrInvalidDelayRange        = errors.New("collector.search delay bounds must be non-negative and min <= max")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingRawPath           = errors.New("collector.output.path is required")
	ErrMissingInputPath         = errors.New("normalizer.input is required")
	ErrMissingOutputPath        = errors.New("normalizer.output is required")
	ErrInvalidPreviewRows       = errors.New("normalizer.preview_rows must be non-negative")
	ErrInvalidSalaryBounds      = errors.New("normalizer.salary bounds must be positive and min < max")
	ErrInvalidMinListings       = errors.New("validation.min_listings must be non-negative")
	ErrInvalidMaxListings       = errors.New("validation.max_listings must be at least 1")
	ErrMinExceedsMax            = errors.New("validation.min_listings cannot exceed validation.max_listings")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Collector  CollectorConfig  `yaml:"collector"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Validation ValidationConfig `yaml:"validation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Features   FeaturesConfig   `yaml:"features"`
	Advanced   AdvancedConfig   `yaml:"advanced"`
}

// CollectorConfig contains the scraping-stage settings.
type CollectorConfig struct {
	Search SearchConfig `yaml:"search"`
	Retry  RetryPolicy  `yaml:"retry"`
	Output OutputConfig `yaml:"output"`
}

// SearchConfig describes the search to crawl.
type SearchConfig struct {
	BaseURL         string `yaml:"base_url"`
	Keywords        string `yaml:"keywords"`
	MaxPages        int    `yaml:"max_pages"`
	TargetListings  int    `yaml:"target_listings"`
	DelayMinMs      int    `yaml:"delay_min_ms"`
	DelayMaxMs      int    `yaml:"delay_max_ms"`
	RotateUserAgent bool   `yaml:"rotate_user_agent"`
}

// RetryPolicy defines retry behavior for page fetches.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// OutputConfig defines where the raw CSV is written.
type OutputConfig struct {
	Path         string `yaml:"path"`
	CreateBackup bool   `yaml:"create_backup"`
}

// NormalizerConfig contains the cleaning-stage settings.
type NormalizerConfig struct {
	InputPath   string       `yaml:"input"`
	OutputPath  string       `yaml:"output"`
	Dedupe      bool         `yaml:"dedupe"`
	PreviewRows int          `yaml:"preview_rows"`
	Salary      SalaryConfig `yaml:"salary"`
}

// SalaryConfig bounds the plausible annual gross range. Figures outside
// the bounds are treated as unparseable.
type SalaryConfig struct {
	MinAnnual float64 `yaml:"min_annual"`
	MaxAnnual float64 `yaml:"max_annual"`
}

// ValidationConfig defines raw-listing validation rules.
type ValidationConfig struct {
	Patterns    PatternsConfig `yaml:"patterns"`
	MinListings int            `yaml:"min_listings"`
	MaxListings int            `yaml:"max_listings"`
}

// PatternsConfig defines regex patterns for validation.
type PatternsConfig struct {
	Salary string `yaml:"salary"`
	Link   string `yaml:"link"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level          string `yaml:"level"`
	SampleListings int    `yaml:"sample_listings"`
	ShowProgress   bool   `yaml:"show_progress"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	StrictValidation bool `yaml:"strict_validation"`
	EnablePreview    bool `yaml:"enable_preview"`
}

// AdvancedConfig contains advanced settings.
type AdvancedConfig struct {
	BufferSizeKb               int  `yaml:"buffer_size_kb"`
	ContinueOnValidationErrors bool `yaml:"continue_on_validation_errors"`
}

// Default returns the built-in configuration: a France-wide HelloWork crawl
// into data/, with the salary plausibility bounds used by the cleaner.
func Default() *Config {
	return &Config{
		Collector: CollectorConfig{
			Search: SearchConfig{
				BaseURL:        "https://www.hellowork.com/fr-fr/emploi/recherche.html",
				Keywords:       "",
				MaxPages:       40,
				TargetListings: 1000,
				DelayMinMs:     1000,
				DelayMaxMs:     2200,
			},
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    1000,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
			Output: OutputConfig{
				Path:         "data/offres_hellowork.csv",
				CreateBackup: true,
			},
		},
		Normalizer: NormalizerConfig{
			InputPath:   "data/offres_hellowork.csv",
			OutputPath:  "data/offres_clean.csv",
			Dedupe:      false,
			PreviewRows: 5,
			Salary: SalaryConfig{
				MinAnnual: 14000,
				MaxAnnual: 200000,
			},
		},
		Validation: ValidationConfig{
			Patterns: PatternsConfig{
				Salary: "€",
				Link:   "^https?://",
			},
			MinListings: 1,
			MaxListings: 5000,
		},
		Logging: LoggingConfig{
			Level:          "info",
			SampleListings: 3,
			ShowProgress:   true,
		},
		Features: FeaturesConfig{
			StrictValidation: false,
			EnablePreview:    true,
		},
		Advanced: AdvancedConfig{
			BufferSizeKb:               2048,
			ContinueOnValidationErrors: true,
		},
	}
}

// DefaultConfigPath is where the commands look for a config file when none
// is given on the command line.
const DefaultConfigPath = "configs/pipeline.yaml"

// LoadOrDefault loads the given config file when path is non-empty, then
// DefaultConfigPath when it exists, then falls back to the built-in defaults.
// The returned source is the file that was loaded, or "" for the defaults.
func LoadOrDefault(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := LoadConfig(path)

		return cfg, path, err
	}

	if _, err := os.Stat(DefaultConfigPath); err == nil {
		cfg, err := LoadConfig(DefaultConfigPath)

		return cfg, DefaultConfigPath, err
	}

	return Default(), "", nil
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Check collector config
	if c.Collector.Search.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if c.Collector.Search.MaxPages < 1 {
		return ErrInvalidMaxPages
	}

	if c.Collector.Search.TargetListings < 1 {
		return ErrInvalidTargetListings
	}

	if c.Collector.Search.DelayMinMs < 0 || c.Collector.Search.DelayMaxMs < c.Collector.Search.DelayMinMs {
		return ErrInvalidDelayRange
	}

	// Validate retry policy
	if c.Collector.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Collector.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Collector.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Collector.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Collector.Output.Path == "" {
		return ErrMissingRawPath
	}

	// Check normalizer config
	if c.Normalizer.InputPath == "" {
		return ErrMissingInputPath
	}

	if c.Normalizer.OutputPath == "" {
		return ErrMissingOutputPath
	}

	if c.Normalizer.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}

	if c.Normalizer.Salary.MinAnnual <= 0 || c.Normalizer.Salary.MaxAnnual <= c.Normalizer.Salary.MinAnnual {
		return ErrInvalidSalaryBounds
	}

	// Validate validation config
	if c.Validation.MinListings < 0 {
		return ErrInvalidMinListings
	}

	if c.Validation.MaxListings < 1 {
		return ErrInvalidMaxListings
	}

	if c.Validation.MinListings > c.Validation.MaxListings {
		return ErrMinExceedsMax
	}

	// Validate regex patterns
	patterns := map[string]string{
		"salary": c.Validation.Patterns.Salary,
		"link":   c.Validation.Patterns.Link,
	}

	for name, pattern := range patterns {
		if pattern != "" {
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("validation.patterns.%s is invalid regex: %w", name, err)
			}
		}
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Keywords: %q, MaxPages: %d, Raw: %s, Clean: %s}",
		c.Collector.Search.Keywords,
		c.Collector.Search.MaxPages,
		c.Collector.Output.Path,
		c.Normalizer.OutputPath,
	)
}
