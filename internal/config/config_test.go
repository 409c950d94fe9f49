package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/pianoroll/internal/tool"
)

func noEnv(string) (string, bool) { return "", false }
func noEnviron() []string         { return nil }

func fakeEnv(vars map[string]string) (func(string) (string, bool), func() []string) {
	lookup := func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
	environ := func() []string {
		out := make([]string, 0, len(vars))
		for k, v := range vars {
			out = append(out, k+"="+v)
		}
		return out
	}
	return lookup, environ
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	q, err := cfg.Quantizer()
	if err != nil {
		t.Fatalf("Quantizer() error = %v", err)
	}
	if q.UnitX() != 10 || q.UnitY() != 12 {
		t.Errorf("default grid = %s", q)
	}
	if cfg.Mode() != tool.KindPencil {
		t.Errorf("Mode() = %v, want pencil", cfg.Mode())
	}
	if cfg.HoverDebounce() != 30*time.Millisecond {
		t.Errorf("HoverDebounce() = %v", cfg.HoverDebounce())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "none.toml"), noEnv, noEnviron)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "pianoroll.toml", `
[grid]
unit_x = 16
unit_y = 8.5

[tool]
default_mode = "selection"

[logging]
level = "debug"
`)

	cfg, err := load(path, noEnv, noEnviron)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Grid.UnitX != 16 || cfg.Grid.UnitY != 8.5 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	if cfg.Mode() != tool.KindSelection {
		t.Errorf("Mode() = %v", cfg.Mode())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Tool.EdgeCap != 8 || cfg.View.CellWidth != 5 {
		t.Errorf("defaults lost: tool=%+v view=%+v", cfg.Tool, cfg.View)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "pianoroll.yaml", `
grid:
  unit_x: 20
view:
  cell_width: 4
script:
  path: hooks.lua
  timeout_ms: 100
`)

	cfg, err := load(path, noEnv, noEnviron)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Grid.UnitX != 20 || cfg.Grid.UnitY != 12 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	if cfg.View.CellWidth != 4 {
		t.Errorf("cell width = %v", cfg.View.CellWidth)
	}
	if cfg.Script.Path != "hooks.lua" || cfg.ScriptTimeout() != 100*time.Millisecond {
		t.Errorf("script = %+v", cfg.Script)
	}
}

func TestLoadTOMLParseError(t *testing.T) {
	path := writeFile(t, "bad.toml", "[grid]\nunit_x = = 3\n")

	_, err := load(path, noEnv, noEnviron)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("load() error = %v, want ParseError", err)
	}
	if pe.Path != path || pe.Line != 2 {
		t.Errorf("ParseError = %+v, want line 2 of %s", pe, path)
	}
}

func TestLoadYAMLParseError(t *testing.T) {
	path := writeFile(t, "bad.yml", "grid: [unterminated\n")

	_, err := load(path, noEnv, noEnviron)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("load() error = %v, want ParseError", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "pianoroll.json", "{}")
	if _, err := load(path, noEnv, noEnviron); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "pianoroll.toml", "[grid]\nunit_x = 0\n")

	_, err := load(path, noEnv, noEnviron)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("load() error = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "grid.unit_x") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unit y", func(c *Config) { c.Grid.UnitY = -1 }, "grid.unit_y"},
		{"edge cap", func(c *Config) { c.Tool.EdgeCap = 0 }, "tool.edge_cap"},
		{"mode", func(c *Config) { c.Tool.DefaultMode = "eraser" }, "tool.default_mode"},
		{"debounce", func(c *Config) { c.Tool.HoverDebounceMS = -5 }, "tool.hover_debounce_ms"},
		{"cell height", func(c *Config) { c.View.CellHeight = 0 }, "view.cell_height"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"script timeout", func(c *Config) { c.Script.TimeoutMS = -1 }, "script.timeout_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Validate() = %v, want FieldError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %q, want %q", fe.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("FieldError does not match ErrInvalidConfig")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "pianoroll.toml", "[grid]\nunit_x = 16\n")
	lookup, environ := fakeEnv(map[string]string{
		"PIANOROLL_GRID_UNIT_X":   "24",
		"PIANOROLL_TOOL_EDGE_CAP": "4.5",
		"PIANOROLL_LOG_LEVEL":     "warn",
		"PIANOROLL_MODE":          "select",
		"PIANOROLL_SCRIPT":        "/tmp/hooks.lua",
		"PIANOROLL_UNKNOWN_KEY":   "ignored",
		"PIANOROLL_":              "ignored",
		"OTHER_GRID_UNIT_X":       "99",
	})

	cfg, err := load(path, lookup, environ)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Grid.UnitX != 24 {
		t.Errorf("unit_x = %v, want env value 24", cfg.Grid.UnitX)
	}
	if cfg.Tool.EdgeCap != 4.5 {
		t.Errorf("edge_cap = %v", cfg.Tool.EdgeCap)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if cfg.Mode() != tool.KindSelection {
		t.Errorf("Mode() = %v", cfg.Mode())
	}
	if cfg.Script.Path != "/tmp/hooks.lua" {
		t.Errorf("script path = %q", cfg.Script.Path)
	}
}

func TestEnvTypeMismatch(t *testing.T) {
	lookup, environ := fakeEnv(map[string]string{"PIANOROLL_GRID_UNIT_X": "wide"})

	_, err := load("", lookup, environ)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != "environment" {
		t.Errorf("load() error = %v, want environment ParseError", err)
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)
	tests := map[string]string{
		"PIANOROLL_GRID_UNIT_X":            "grid.unit_x",
		"PIANOROLL_TOOL_HOVER_DEBOUNCE_MS": "tool.hover_debounce_ms",
		"PIANOROLL_VIEW":                   "",
	}
	for in, want := range tests {
		if got := l.envToPath(in); got != want {
			t.Errorf("envToPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"12", int64(12)},
		{"1.5", 1.5},
		{"true", true},
		{"FALSE", false},
		{"pencil", "pencil"},
		{"1.2.3", "1.2.3"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, name := range []string{"out.toml", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			want := Default()
			want.Grid.UnitX = 7.5
			want.Script.Path = "x.lua"

			data, err := Encode(name, want)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got := &Config{}
			if err := Decode(name, data, got); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if *got != *want {
				t.Errorf("round trip = %+v, want %+v", got, want)
			}
		})
	}
	if _, err := Encode("out.ini", Default()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(.ini) error = %v", err)
	}
}

func TestClone(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Grid.UnitX = 99
	if a.Grid.UnitX == 99 {
		t.Error("Clone() shares state")
	}
}
