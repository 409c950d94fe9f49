package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load builds a Config from defaults, the file at path and the process
// environment. A missing file, or an empty path, yields defaults plus
// environment overrides.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv, os.Environ)
}

func load(path string, lookup func(string) (string, bool), environ func() []string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := NewEnvLoader(EnvPrefix).withEnv(lookup, environ).Apply(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", displayPath(path), err)
	}
	return cfg, nil
}

// decodeFile overlays the file at path onto cfg.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Decode(path, data, cfg)
}

// Decode parses data as TOML or YAML, chosen by the extension of name, and
// overlays the result onto cfg.
func Decode(name string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			pe := &ParseError{Path: name, Err: err}
			var de *toml.DecodeError
			if errors.As(err, &de) {
				pe.Line, pe.Column = de.Position()
			}
			return pe
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: name, Err: err}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
	return nil
}

// Encode renders cfg as TOML or YAML, chosen by the extension of name.
func Encode(name string, cfg *Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return toml.Marshal(cfg)
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

func displayPath(path string) string {
	if path == "" {
		return "config"
	}
	return path
}
