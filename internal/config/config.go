// Package config loads the builder configuration from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/survey"
)

// CurrentVersion is written by Save; bump on incompatible changes.
const CurrentVersion = 1

// Environment overrides, applied after the file.
const (
	EnvConfigPath    = "FORMBUILDER_CONFIG"
	EnvAdvanceOnAdd  = "FORMBUILDER_ADVANCE_ON_ADD_PAGE"
	EnvHistoryLimit  = "FORMBUILDER_HISTORY_LIMIT"
	EnvCoalesceMs    = "FORMBUILDER_COALESCE_MS"
	EnvNamePrefix    = "FORMBUILDER_NAME_PREFIX"
	EnvSanitize      = "FORMBUILDER_SANITIZE"
	EnvSchemaPath    = "FORMBUILDER_SCHEMA"
	EnvLogLevel      = logging.EnvLevel
	EnvLogFormat     = logging.EnvFormat
	EnvLogFile       = logging.EnvFile
	EnvLogSource     = logging.EnvSource
	defaultFileName  = "formbuilder.yaml"
	defaultCoalesce  = 750
	defaultHistory   = 100
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type EditorConfig struct {
	AdvanceOnAddPage bool   `yaml:"advance_on_add_page"`
	HistoryLimit     int    `yaml:"history_limit"`
	CoalesceMs       int    `yaml:"coalesce_ms"`
	NamePrefix       string `yaml:"name_prefix"`
}

type SanitizeConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ValidationConfig struct {
	// SchemaPath replaces the embedded survey schema when set.
	SchemaPath string `yaml:"schema_path"`
}

// Config is the full configuration document.
type Config struct {
	ConfigVersion int              `yaml:"config_version"`
	Logging       LoggingConfig    `yaml:"logging"`
	Editor        EditorConfig     `yaml:"editor"`
	Sanitize      SanitizeConfig   `yaml:"sanitize"`
	Validation    ValidationConfig `yaml:"validation"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ConfigVersion: CurrentVersion,
		Logging:       LoggingConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Editor: EditorConfig{
			HistoryLimit: defaultHistory,
			CoalesceMs:   defaultCoalesce,
			NamePrefix:   survey.DefaultElementPrefix,
		},
		Sanitize: SanitizeConfig{Enabled: true},
	}
}

// DefaultPath returns FORMBUILDER_CONFIG when set, otherwise formbuilder.yaml
// in the user config directory.
func DefaultPath() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfigPath)); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "formbuilder", defaultFileName), nil
}

// Load reads path over the defaults and applies environment overrides. An
// empty path loads DefaultPath, where a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		resolved, err := DefaultPath()
		if err != nil {
			applyEnvOverrides(&cfg)
			cfg.normalize()
			return cfg, nil
		}
		path = resolved
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Defaults(), fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Defaults(), fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	cfg.ConfigVersion = CurrentVersion
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Editor.HistoryLimit < 0 {
		c.Editor.HistoryLimit = 0
	}
	if c.Editor.CoalesceMs < 0 {
		c.Editor.CoalesceMs = 0
	}
	c.Editor.NamePrefix = strings.TrimSpace(c.Editor.NamePrefix)
	if c.Editor.NamePrefix == "" {
		c.Editor.NamePrefix = survey.DefaultElementPrefix
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = logging.ParseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAdvanceOnAdd)); v != "" {
		cfg.Editor.AdvanceOnAddPage = logging.ParseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryLimit)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.HistoryLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCoalesceMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.CoalesceMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvNamePrefix)); v != "" {
		cfg.Editor.NamePrefix = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSanitize)); v != "" {
		cfg.Sanitize.Enabled = logging.ParseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSchemaPath)); v != "" {
		cfg.Validation.SchemaPath = v
	}
}

// EnvOverrideFor returns the environment variable overriding key, if set.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"logging.level":              EnvLogLevel,
		"logging.format":             EnvLogFormat,
		"logging.source":             EnvLogSource,
		"logging.file":               EnvLogFile,
		"editor.advance_on_add_page": EnvAdvanceOnAdd,
		"editor.history_limit":       EnvHistoryLimit,
		"editor.coalesce_ms":         EnvCoalesceMs,
		"editor.name_prefix":         EnvNamePrefix,
		"sanitize.enabled":           EnvSanitize,
		"validation.schema_path":     EnvSchemaPath,
	}
	env, ok := names[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// LoggingOptions maps the logging section onto logging.Options.
func (c Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

// EditorOptions maps the editor and sanitize sections onto editor options.
func (c Config) EditorOptions() []editor.Option {
	return []editor.Option{
		editor.WithAdvanceOnAddPage(c.Editor.AdvanceOnAddPage),
		editor.WithHistoryLimit(c.Editor.HistoryLimit),
		editor.WithCoalesceInterval(time.Duration(c.Editor.CoalesceMs) * time.Millisecond),
		editor.WithNamePrefix(c.Editor.NamePrefix),
		editor.WithSanitize(c.Sanitize.Enabled),
	}
}
