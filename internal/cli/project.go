package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/config"
	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/model"
)

// project is the resolved view of a command invocation: the root, the
// merged configuration, and the tools to read and write.
type project struct {
	Root    string
	Config  *config.Config
	Paths   model.PathConfig
	Source  model.Tool
	Targets []model.Tool
	Logger  *slog.Logger
}

// splitArgs separates positional arguments into tool names and at most one
// project path.
func splitArgs(logger *slog.Logger, args []string) (path string, tools []string, err error) {
	for _, arg := range args {
		if t, perr := model.ParseTool(arg); perr == nil {
			logger.Debug("treating positional argument as target", logging.Tool(t.String()))
			tools = append(tools, arg)
			continue
		}
		if path != "" {
			return "", nil, fmt.Errorf("multiple paths provided. First: %q, Second: %q", path, arg)
		}
		path = arg
	}
	return path, tools, nil
}

// loadProject resolves the root from positional arguments and loads the
// configuration. Flags win over environment, file and defaults. The
// project logger comes from ctx unless the configuration sets a level.
func loadProject(ctx context.Context, cmd *cli.Command) (*project, error) {
	logger := logging.WithContext(ctx)
	path, positional, err := splitArgs(logger, cmd.Args().Slice())
	if err != nil {
		return nil, err
	}

	root, err := config.ResolveRoot(path)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return nil, err
	}

	if s := cmd.String("source"); cmd.IsSet("source") && s != "" {
		cfg.Source = s
	}
	targets := append(cmd.StringSlice("target"), positional...)
	if len(targets) > 0 {
		cfg.Targets = targets
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// The Before hook only saw the flag; pick up a level from the config file.
	if !cmd.IsSet("log-level") && cfg.LogLevel != "" {
		if ctx, err = withLogger(ctx, cfg.LogLevel); err != nil {
			return nil, err
		}
		logger = logging.FromContext(ctx)
	}

	src, err := cfg.SourceTool()
	if err != nil {
		return nil, err
	}
	tools, err := cfg.TargetTools()
	if err != nil {
		return nil, err
	}

	p := &project{
		Root:    root,
		Config:  cfg,
		Paths:   cfg.PathConfig(root),
		Source:  src,
		Targets: tools,
		Logger:  logger,
	}
	logger.Debug("project resolved",
		logging.Path(root),
		logging.Tool(src.String()),
		slog.Int("targets", len(tools)),
	)
	return p, nil
}

// loadConfig reads --config when given, else the file under root.
func loadConfig(cmd *cli.Command, root string) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
