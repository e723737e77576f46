package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/fragsync/internal/config"
	"git.home.luguber.info/inful/fragsync/internal/logfields"
)

// Global carries process-wide state into commands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	RunID  string
}

// NewGlobal tags logger with a fresh run id.
func NewGlobal(logger *slog.Logger, stdout io.Writer) *Global {
	id := uuid.NewString()
	return &Global{
		Logger: logger.With(logfields.RunID(id)),
		Stdout: stdout,
		RunID:  id,
	}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"${default_config}"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Sync SyncCmd `cmd:"" default:"withargs" help:"Copy fragments from the canonical page into every target (default command)"`
	Init InitCmd `cmd:"" help:"Write a starter configuration listing the site's pages"`
}

// Vars returns the interpolation variables the CLI struct tags refer to.
func Vars(version string) kong.Vars {
	return kong.Vars{
		"version":        version,
		"default_config": config.DefaultPath,
	}
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
