package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "PIANOROLL_"

// EnvLoader applies environment variables on top of a Config.
//
// Explicitly mapped variables are read first. Any other prefixed variable
// is mapped by section: PIANOROLL_GRID_UNIT_X sets grid.unit_x.
type EnvLoader struct {
	prefix  string
	mapping map[string]string

	lookup  func(string) (string, bool)
	environ func() []string
}

// NewEnvLoader creates a loader for the given prefix, including its
// trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		lookup:  os.LookupEnv,
		environ: os.Environ,
	}
}

func (l *EnvLoader) withEnv(lookup func(string) (string, bool), environ func() []string) *EnvLoader {
	l.lookup = lookup
	l.environ = environ
	return l
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"PIANOROLL_LOG_LEVEL": "logging.level",
		"PIANOROLL_LOG_FILE":  "logging.file",
		"PIANOROLL_MODE":      "tool.default_mode",
		"PIANOROLL_SCRIPT":    "script.path",
	}
}

// Values returns the overrides as a nested map keyed by section.
func (l *EnvLoader) Values() map[string]any {
	values := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(values, path, parseValue(val))
		}
	}

	for _, kv := range l.environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		path := l.envToPath(name)
		if path == "" {
			continue
		}
		setByPath(values, path, parseValue(val))
	}

	return values
}

// Apply overlays the environment onto cfg.
func (l *EnvLoader) Apply(cfg *Config) error {
	values := l.Values()
	if len(values) == 0 {
		return nil
	}

	// Round-trip through TOML so the overrides decode with the same rules
	// as a config file.
	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return &ParseError{Path: "environment", Err: err}
	}
	return nil
}

// envToPath converts PIANOROLL_GRID_UNIT_X to grid.unit_x. Names without a
// setting part are skipped.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return ""
	}
	return section + "." + setting
}

// parseValue converts numbers and booleans; anything else stays a string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
