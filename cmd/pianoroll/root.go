package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/pianoroll/internal/app"
	"github.com/dshills/pianoroll/internal/config"
	"github.com/dshills/pianoroll/internal/logging"
	"github.com/dshills/pianoroll/internal/renderer/backend"
	"github.com/dshills/pianoroll/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFile    string
	mode       string
	script     string
	watch      bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "pianoroll",
		Short: "Terminal piano-roll note editor",
		Long: `pianoroll edits notes on a snapping grid in the terminal.

Keys: p pencil, s selection, del/x delete selection, esc cancel or clear,
arrows scroll, q quit.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "path to a TOML or YAML config file")
	f.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	f.StringVarP(&flags.mode, "mode", "m", "", "starting tool (pencil, selection)")
	f.StringVar(&flags.script, "script", "", "Lua hook script")
	f.BoolVar(&flags.watch, "watch", true, "reload the config file when it changes")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pianoroll %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}

// apply overwrites cfg with every flag that was set.
func (f rootFlags) apply(cfg *config.Config) {
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Logging.File = f.logFile
	}
	if f.mode != "" {
		cfg.Tool.DefaultMode = f.mode
	}
	if f.script != "" {
		cfg.Script.Path = f.script
	}
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(flags rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger returns a logger for cfg and a function closing its file.
// The terminal belongs to the editor, so logs without a file are discarded.
func openLogger(cfg *config.Config) (*logging.Logger, func(), error) {
	var out io.Writer = io.Discard
	closer := func() {}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = func() { file.Close() }
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: out,
		Prefix: "pianoroll",
	})
	return logger, closer, nil
}

func run(ctx context.Context, flags rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := script.Load(cfg.Script.Path,
		script.WithTimeout(cfg.ScriptTimeout()),
		script.WithLogger(logger),
	)
	switch {
	case errors.Is(err, script.ErrNoScript):
		engine = nil
	case err != nil:
		return err
	default:
		defer engine.Close()
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}

	opts := app.Options{
		Config:    cfg,
		Backend:   term,
		Logger:    logger,
		Script:    engine,
		Overrides: flags.apply,
	}
	if flags.watch {
		opts.ConfigPath = flags.configPath
	}

	application, err := app.New(opts)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
