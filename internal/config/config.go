// Package config loads the optional simgraph.toml configuration file.
//
// Example:
//
//	log_level = "debug"
//	format = "json"
//
//	[generator]
//	root_name = "Scene"
//
// Command-line flags override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/roach88/simgraph/internal/generator"
)

// DefaultFile is the configuration file looked up in the working directory
// when no path is given.
const DefaultFile = "simgraph.toml"

// Config holds CLI settings.
type Config struct {
	LogLevel  string    `toml:"log_level"`
	Format    string    `toml:"format"`
	Generator Generator `toml:"generator"`
}

// Generator configures scene generation.
type Generator struct {
	RootName string `toml:"root_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "warn",
		Format:    "text",
		Generator: Generator{RootName: generator.DefaultRootName},
	}
}

// Load reads path over the defaults. Unknown keys are errors.
//
// With path empty, DefaultFile is read if present and defaults are returned
// otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
	return l, nil
}
