package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrCourseDirRequired = errors.New("coursemd config: course directory is required")
var ErrCommandTimeoutInvalid = errors.New("coursemd config: command timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("coursemd config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("coursemd config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("coursemd config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("coursemd config: logging format is invalid")

// Config aggregates feature flags and settings for the course module.
type Config struct {
	Features Features       `yaml:"features"`
	Course   CourseConfig   `yaml:"course"`
	Render   RenderConfig   `yaml:"render"`
	Commands CommandsConfig `yaml:"commands"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Features toggles optional behaviour.
type Features struct {
	// Logger wires the configured logging provider instead of the no-op logger.
	Logger bool `yaml:"logger"`
	// Validation checks parsed units against the unit schema in command handlers.
	Validation bool `yaml:"validation"`
}

// CourseConfig captures where course files live and how they are discovered.
type CourseConfig struct {
	Dir       string `yaml:"dir"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`
}

// RenderConfig mirrors interfaces.RenderOptions for runtime configuration.
type RenderConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// CommandsConfig captures command handler behaviour.
type CommandsConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the defaults used when no configuration file is given.
func DefaultConfig() Config {
	return Config{
		Features: Features{},
		Course: CourseConfig{
			Dir:       ".",
			Pattern:   "*.md",
			Recursive: true,
		},
		Render: RenderConfig{},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// LoadFile reads a YAML configuration file over DefaultConfig. Unknown keys
// are rejected so typos surface early. The result is not validated.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("coursemd config: read %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("coursemd config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Course.Dir) == "" {
		return ErrCourseDirRequired
	}
	if cfg.Commands.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrCommandTimeoutInvalid, cfg.Commands.Timeout)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
