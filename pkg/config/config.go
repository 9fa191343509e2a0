// Package config loads swiccd's configuration from environment variables,
// a YAML file, and built-in defaults, in that order of precedence, via the viper/mapstructure/validator combination.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is swiccd's full static configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (SWICCD_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// Environment variables only override keys that the configuration file
// sets. When no file is found, Load returns GetDefaultConfig() and does not
// read the environment.
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Disk identifies the filesystem image this engine serves.
	Disk DiskConfig `mapstructure:"disk" yaml:"disk"`

	// Listen configures the optional TCP bridge adapter. Address is empty
	// when the bridge is disabled and the engine is driven in-process only.
	Listen ListenConfig `mapstructure:"listen" yaml:"listen"`

	// Metrics configures the Prometheus metrics HTTP endpoint.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// ATR overrides the engine's built-in answer-to-reset bytes. Advanced
	// and testing use only — most deployments leave this unset.
	ATR ATRConfig `mapstructure:"atr" yaml:"atr"`

	// PPS holds transmission-parameter indices for the state right after a
	// reset, before any PPS negotiation. Load parses and validates them;
	// swiccd does not apply them, and the engine always starts from
	// tp.DefaultIdx.
	PPS PPSConfig `mapstructure:"pps" yaml:"pps"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format.
	// Valid values: text, json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written: stdout, stderr, or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// DiskConfig identifies the filesystem image loaded at startup.
type DiskConfig struct {
	// Path is the disk image file to load.
	Path string `mapstructure:"path" validate:"required" yaml:"path"`

	// Format is the on-disk encoding: "binary" (fs.Load's native format) or
	// "json" (diskjson's developer-friendly format).
	Format string `mapstructure:"format" validate:"required,oneof=binary json" yaml:"format"`
}

// ListenConfig configures the optional TCP network adapter.
type ListenConfig struct {
	// Address is the TCP address to listen on, e.g. ":5768". Empty disables
	// the bridge.
	Address string `mapstructure:"address" yaml:"address"`
}

// MetricsConfig configures the Prometheus metrics HTTP server.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Address is the HTTP address to serve /metrics on.
	Address string `mapstructure:"address" yaml:"address"`
}

// ATRConfig optionally overrides the engine's answer-to-reset bytes.
type ATRConfig struct {
	// Override, if non-empty, replaces card.Atr verbatim. Given as a hex
	// string in YAML/env (e.g. "3BDF9600...").
	Override HexBytes `mapstructure:"override" validate:"omitempty,min=2,max=33" yaml:"override,omitempty"`
}

// PPSConfig holds optional Fi/Di table indices for the state right after a
// reset. They are validated but not applied (see Config.PPS).
type PPSConfig struct {
	// DefaultFiIdx is an Fi table index (0-15), or nil when unset.
	DefaultFiIdx *uint8 `mapstructure:"default_fi_idx" validate:"omitempty,max=15" yaml:"default_fi_idx,omitempty"`

	// DefaultDiIdx is a Di table index (0-15), or nil when unset.
	DefaultDiIdx *uint8 `mapstructure:"default_di_idx" validate:"omitempty,max=15" yaml:"default_di_idx,omitempty"`
}

// HexBytes is a byte slice that decodes from a hex string in config
// sources, a mapstructure decode hook for human-readable scalar config
// values.
type HexBytes []byte

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: path to the config file (empty string uses the default
//     search path of "./swiccd.yaml").
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !found {
		cfg := GetDefaultConfig()
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes cfg to path in YAML form.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variable and config file
// settings.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("SWICCD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("swiccd")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the config file if it exists. Returns (found, error).
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// configDecodeHooks returns the combined mapstructure decode hook for every
// custom scalar type Config uses.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		hexBytesDecodeHook(),
	)
}

// hexBytesDecodeHook converts a hex string to HexBytes, letting config files
// and SWICCD_ATR_OVERRIDE carry ATR overrides as plain hex text.
func hexBytesDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(HexBytes(nil)) {
			return data, nil
		}

		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		if s == "" {
			return HexBytes(nil), nil
		}

		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex in atr.override: %w", err)
		}
		return HexBytes(b), nil
	}
}

// Validate checks cfg against its struct tags with go-playground/validator.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// MarshalYAML renders HexBytes back to a hex string.
func (h HexBytes) MarshalYAML() (interface{}, error) {
	if len(h) == 0 {
		return "", nil
	}
	return hex.EncodeToString(h), nil
}
