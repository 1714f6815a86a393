// Package cli provides the command-line interface for ruleport.
package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/config"
	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:      "ruleport",
		Usage:     "Convert AI assistant rule files between Cursor, Claude Code, Copilot, Antigravity, Kiro and Windsurf",
		UsageText: "ruleport [command] [path] [tool...] [options]",
		Version:   Version,
		Description: `Reads rules written in one assistant's convention and writes them in
   every other assistant's convention. Without a command, ruleport syncs.

   Tools: ` + strings.Join(model.ToolNames(), ", ") + `

   Examples:
     ruleport                         # sync every target in the current directory
     ruleport /path/to/project        # sync a specific project root
     ruleport copilot kiro            # sync only to Copilot and Kiro
     ruleport --source windsurf       # read Windsurf rules instead of Cursor
     ruleport check                   # exit 1 when files are out of date (for CI)
     ruleport --watch                 # re-sync whenever a rule changes`,
		Flags: globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureColors(cmd)
			return withLogger(ctx, cmd.String("log-level"))
		},
		Action: syncAction,
		Commands: []*cli.Command{
			syncCommand(),
			checkCommand(),
			watchCommand(),
			statusCommand(),
			initCommand(),
			mcpCommand(),
			configCommand(),
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

// globalFlags are accepted by every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "tool to read rules from (default: cursor)",
			Sources: cli.EnvVars(config.EnvSource),
		},
		&cli.StringSliceFlag{
			Name:    "target",
			Aliases: []string{"t"},
			Usage:   "tool to write rules for, repeatable (default: all)",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to a .ruleport.yaml or .ruleport.toml file",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level: " + strings.Join(logging.LevelNames, ", "),
			Sources: cli.EnvVars(config.EnvLogLevel),
		},
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "Keep running and re-sync when source rules change",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}
}

// configureColors sets up color output based on CLI flags.
func configureColors(cmd *cli.Command) {
	ui.Configure(cmd.Bool("no-color"))
}

// withLogger attaches a logger at the named level to ctx. An empty name
// keeps the default warn level.
func withLogger(ctx context.Context, level string) (context.Context, error) {
	opts := logging.DefaultOptions()
	if level != "" {
		lvl, err := logging.ParseLevel(level)
		if err != nil {
			return ctx, err
		}
		opts.Level = lvl
	}
	if opts.Level <= logging.LevelDebug {
		opts.AddSource = true
	}

	logger := logging.New(opts)
	logger.Debug("logging configured", slog.String("level", opts.Level.String()))
	return logging.NewContext(ctx, logger), nil
}
