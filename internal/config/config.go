// =============================================================================
// passwd2json - Configuration Module
// =============================================================================
//
// Loads the optional YAML configuration file. Every setting has a default,
// so the tool runs without any configuration at all; a config file only
// changes where and how the output is written.
//
// EXAMPLE (config.yaml):
//   output_dir: /var/lib/passwd2json
//   file_name_format: "output-{millis}.txt"
//   indent: "\t"
//   key_order: insertion
//   log_level: info
//   log_format: console
//   retention_days: 30
//   xlsx_report: ""
//
// Command-line flags override anything set here.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Key orders accepted by KeyOrder.
const (
	KeyOrderInsertion = "insertion"
	KeyOrderSorted    = "sorted"
)

// Log formats accepted by LogFormat.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// DefaultFileNameFormat names output files after the run time in epoch millis.
const DefaultFileNameFormat = "output-{millis}.txt"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory the output file is created in.
	// Default: "." (the current working directory)
	OutputDir string `yaml:"output_dir"`

	// FileNameFormat is the output file name pattern.
	// Placeholders:
	//   {millis}    - milliseconds since the Unix epoch
	//   {timestamp} - local time as YYYYMMDD_HHMMSS
	//   {date}      - local date as YYYYMMDD
	//   {uuid}      - a random UUID
	// Default: "output-{millis}.txt"
	FileNameFormat string `yaml:"file_name_format"`

	// Indent is one level of JSON indentation.
	// Default: "\t"
	Indent string `yaml:"indent"`

	// KeyOrder is "insertion" (account-table order) or "sorted".
	// Default: "insertion"
	KeyOrder string `yaml:"key_order"`

	// RetentionDays removes earlier outputs older than this many days after
	// a successful run. 0 keeps everything.
	// Default: 0
	RetentionDays int `yaml:"retention_days"`

	// XLSXReport is the path of an optional spreadsheet report. Empty
	// disables it.
	XLSXReport string `yaml:"xlsx_report"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel is one of "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "console" (human-readable) or "json".
	// Default: "console"
	LogFormat string `yaml:"log_format"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load reads and validates the configuration file at configPath.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed, or fails validation.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault behaves like Load, except that a missing file yields the
// defaults when the path was not explicitly requested.
func LoadOrDefault(configPath string, explicit bool) (*Config, error) {
	config, err := Load(configPath)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.FileNameFormat == "" {
		config.FileNameFormat = DefaultFileNameFormat
	}
	if config.Indent == "" {
		config.Indent = "\t"
	}
	if config.KeyOrder == "" {
		config.KeyOrder = KeyOrderInsertion
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = LogFormatConsole
	}
}

// Validate checks the configuration for values the converter cannot use.
func (c *Config) Validate() error {
	switch c.KeyOrder {
	case KeyOrderInsertion, KeyOrderSorted:
	default:
		return fmt.Errorf("key_order must be %q or %q, got %q", KeyOrderInsertion, KeyOrderSorted, c.KeyOrder)
	}

	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("log_format must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, c.LogFormat)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	if c.RetentionDays < 0 {
		return fmt.Errorf("retention_days must not be negative, got %d", c.RetentionDays)
	}

	if strings.ContainsAny(c.FileNameFormat, `/\`) {
		return fmt.Errorf("file_name_format must be a plain file name, got %q", c.FileNameFormat)
	}

	if strings.TrimSpace(c.Indent) != "" {
		return fmt.Errorf("indent must contain only whitespace, got %q", c.Indent)
	}

	return nil
}

// SortKeys reports whether output keys are sorted.
func (c *Config) SortKeys() bool {
	return c.KeyOrder == KeyOrderSorted
}
