// Package config loads and watches piano roll settings.
//
// Settings come from three places, later ones winning:
//
//  1. built-in defaults (Default)
//  2. a TOML or YAML file, chosen by extension
//  3. PIANOROLL_* environment variables
//
// Example TOML:
//
//	[grid]
//	unit_x = 10
//	unit_y = 12
//
//	[tool]
//	edge_cap = 8
//	default_mode = "pencil"
//
//	[logging]
//	level = "debug"
//
// Watcher reloads the file when it changes on disk and hands the validated
// result to a callback.
package config
