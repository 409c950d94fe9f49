package config

import (
	"errors"
	"math"
	"time"

	"github.com/dshills/pianoroll/internal/grid"
	"github.com/dshills/pianoroll/internal/logging"
	"github.com/dshills/pianoroll/internal/tool"
)

// Config is the complete settings tree.
type Config struct {
	Grid    GridConfig    `toml:"grid" yaml:"grid"`
	Tool    ToolConfig    `toml:"tool" yaml:"tool"`
	View    ViewConfig    `toml:"view" yaml:"view"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Script  ScriptConfig  `toml:"script" yaml:"script"`
}

// GridConfig is the snapping grid in roll pixels.
type GridConfig struct {
	UnitX float64 `toml:"unit_x" yaml:"unit_x"`
	UnitY float64 `toml:"unit_y" yaml:"unit_y"`
}

// ToolConfig tunes the interaction tools.
type ToolConfig struct {
	// EdgeCap is the widest edge grab zone in roll pixels.
	EdgeCap float64 `toml:"edge_cap" yaml:"edge_cap"`
	// DefaultMode is "pencil" or "selection".
	DefaultMode string `toml:"default_mode" yaml:"default_mode"`
	// HoverDebounceMS coalesces hover updates. Zero disables coalescing.
	HoverDebounceMS int `toml:"hover_debounce_ms" yaml:"hover_debounce_ms"`
}

// ViewConfig maps terminal cells to roll pixels.
type ViewConfig struct {
	CellWidth  float64 `toml:"cell_width" yaml:"cell_width"`
	CellHeight float64 `toml:"cell_height" yaml:"cell_height"`
}

// LoggingConfig controls the log sink.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty discards logs, since the terminal is
	// owned by the editor.
	File string `toml:"file" yaml:"file"`
}

// ScriptConfig points at an optional Lua hook script.
type ScriptConfig struct {
	Path      string `toml:"path" yaml:"path"`
	TimeoutMS int    `toml:"timeout_ms" yaml:"timeout_ms"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Grid: GridConfig{UnitX: 10, UnitY: 12},
		Tool: ToolConfig{
			EdgeCap:         8,
			DefaultMode:     "pencil",
			HoverDebounceMS: 30,
		},
		View:    ViewConfig{CellWidth: 5, CellHeight: 12},
		Logging: LoggingConfig{Level: "info"},
		Script:  ScriptConfig{TimeoutMS: 250},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks every setting and joins all failures.
func (c *Config) Validate() error {
	var errs []error
	positive := func(field string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, &FieldError{Field: field, Message: "must be a positive number"})
		}
	}

	positive("grid.unit_x", c.Grid.UnitX)
	positive("grid.unit_y", c.Grid.UnitY)
	positive("tool.edge_cap", c.Tool.EdgeCap)
	positive("view.cell_width", c.View.CellWidth)
	positive("view.cell_height", c.View.CellHeight)

	if _, err := tool.ParseKind(c.Tool.DefaultMode); err != nil {
		errs = append(errs, &FieldError{Field: "tool.default_mode", Message: err.Error()})
	}
	if c.Tool.HoverDebounceMS < 0 {
		errs = append(errs, &FieldError{Field: "tool.hover_debounce_ms", Message: "must not be negative"})
	}
	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, &FieldError{Field: "logging.level", Message: "unknown level " + c.Logging.Level})
	}
	if c.Script.TimeoutMS < 0 {
		errs = append(errs, &FieldError{Field: "script.timeout_ms", Message: "must not be negative"})
	}

	return errors.Join(errs...)
}

// Quantizer builds the snapping grid.
func (c *Config) Quantizer() (grid.Quantizer, error) {
	return grid.New(c.Grid.UnitX, c.Grid.UnitY)
}

// Mode returns the starting tool.
func (c *Config) Mode() tool.Kind {
	k, _ := tool.ParseKind(c.Tool.DefaultMode)
	return k
}

// HoverDebounce returns the hover coalescing window.
func (c *Config) HoverDebounce() time.Duration {
	return time.Duration(c.Tool.HoverDebounceMS) * time.Millisecond
}

// ScriptTimeout returns the per-hook deadline.
func (c *Config) ScriptTimeout() time.Duration {
	return time.Duration(c.Script.TimeoutMS) * time.Millisecond
}
