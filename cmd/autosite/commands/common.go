// Package commands implements the autosite subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnv overrides the log level when --verbose is not given.
const LogLevelEnv = "AUTOSITE_LOG_LEVEL"

// Global carries shared state into subcommands. Logging goes through the
// slog default installed by AfterApply.
type Global struct {
	// Stdout receives the friendly progress lines; os.Stdout when nil.
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build   BuildCmd   `cmd:"" help:"Build the site from the configuration"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	List    ListCmd    `cmd:"" help:"Manage legacy list files"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel resolves the level from --verbose, then AUTOSITE_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
