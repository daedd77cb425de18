// Package config provides configuration loading for the schematic CLI: a
// YAML file, then SCHEMATIC_* environment overrides. Command-line flags are
// applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	js "github.com/reoring/schematic/jsonschema"
)

// Environment variable names.
const (
	EnvOutDir        = "SCHEMATIC_OUT_DIR"
	EnvFormat        = "SCHEMATIC_FORMAT"
	EnvDialect       = "SCHEMATIC_DIALECT"
	EnvIndent        = "SCHEMATIC_INDENT"
	EnvWorkers       = "SCHEMATIC_WORKERS"
	EnvLang          = "SCHEMATIC_LANG"
	EnvLogLevel      = "SCHEMATIC_LOG_LEVEL"
	EnvLogFile       = "SCHEMATIC_LOG_FILE"
	EnvLogMaxSizeMB  = "SCHEMATIC_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "SCHEMATIC_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = "SCHEMATIC_LOG_MAX_AGE_DAYS"
	EnvLogCompress   = "SCHEMATIC_LOG_COMPRESS"
)

// Config holds all settings of a generation run.
type Config struct {
	OutDir  string `yaml:"out_dir"` // SCHEMATIC_OUT_DIR, default "" (stdout)
	Format  string `yaml:"format"`  // SCHEMATIC_FORMAT, default "json"
	Dialect string `yaml:"dialect"` // SCHEMATIC_DIALECT, default "classic"
	Indent  int    `yaml:"indent"`  // SCHEMATIC_INDENT, default 2
	Workers int    `yaml:"workers"` // SCHEMATIC_WORKERS, default 0 (one per root)
	Lang    string `yaml:"lang"`    // SCHEMATIC_LANG, default "en"

	Log Log `yaml:"log"`
}

// Log configures the CLI logger.
type Log struct {
	Level      string `yaml:"level"`        // SCHEMATIC_LOG_LEVEL, default "info"
	File       string `yaml:"file"`         // SCHEMATIC_LOG_FILE, default "" (stderr only)
	MaxSizeMB  int    `yaml:"max_size_mb"`  // SCHEMATIC_LOG_MAX_SIZE_MB, default 10
	MaxBackups int    `yaml:"max_backups"`  // SCHEMATIC_LOG_MAX_BACKUPS, default 3
	MaxAgeDays int    `yaml:"max_age_days"` // SCHEMATIC_LOG_MAX_AGE_DAYS, default 28
	Compress   bool   `yaml:"compress"`     // SCHEMATIC_LOG_COMPRESS, default true
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:  "json",
		Dialect: "classic",
		Indent:  2,
		Lang:    "en",
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load reads path (when non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decode rejects unknown keys so that typos surface instead of being ignored.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.OutDir = getEnvString(EnvOutDir, c.OutDir)
	c.Format = getEnvString(EnvFormat, c.Format)
	c.Dialect = getEnvString(EnvDialect, c.Dialect)
	c.Indent = getEnvInt(EnvIndent, c.Indent)
	c.Workers = getEnvInt(EnvWorkers, c.Workers)
	c.Lang = getEnvString(EnvLang, c.Lang)

	c.Log.Level = getEnvString(EnvLogLevel, c.Log.Level)
	c.Log.File = getEnvString(EnvLogFile, c.Log.File)
	c.Log.MaxSizeMB = getEnvInt(EnvLogMaxSizeMB, c.Log.MaxSizeMB)
	c.Log.MaxBackups = getEnvInt(EnvLogMaxBackups, c.Log.MaxBackups)
	c.Log.MaxAgeDays = getEnvInt(EnvLogMaxAgeDays, c.Log.MaxAgeDays)
	c.Log.Compress = getEnvBool(EnvLogCompress, c.Log.Compress)
}

// Validate checks enumerated values and bounds.
func (c *Config) Validate() error {
	if _, ok := js.ParseFormat(c.Format); !ok {
		return fmt.Errorf("config: unknown format %q (want json or yaml)", c.Format)
	}
	if _, ok := js.ParseDialect(c.Dialect); !ok {
		return fmt.Errorf("config: unknown dialect %q (want classic or 2020)", c.Dialect)
	}
	if c.Indent < 0 {
		return fmt.Errorf("config: indent must not be negative, got %d", c.Indent)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// FormatValue returns the parsed output format. Call after Validate.
func (c *Config) FormatValue() js.Format {
	f, _ := js.ParseFormat(c.Format)
	return f
}

// DialectValue returns the parsed keyword dialect. Call after Validate.
func (c *Config) DialectValue() js.Dialect {
	d, _ := js.ParseDialect(c.Dialect)
	return d
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
