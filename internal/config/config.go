// Package config loads ipchash settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Payload file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the settings read from IPCHASH_* variables. Command line flags
// take precedence over these values.
type Config struct {
	LogLevel      string `env:"IPCHASH_LOG_LEVEL" envDefault:"warn"`
	PayloadFormat string `env:"IPCHASH_PAYLOAD_FORMAT" envDefault:"json"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	format, err := ParseFormat(cfg.PayloadFormat)
	if err != nil {
		return Config{}, fmt.Errorf("IPCHASH_PAYLOAD_FORMAT: %w", err)
	}
	cfg.PayloadFormat = format

	return cfg, nil
}

// ParseFormat normalizes a payload format name. "yml" is accepted as "yaml".
func ParseFormat(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported payload format %q (supported: json, yaml)", value)
	}
}
