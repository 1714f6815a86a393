package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/mcpserver"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:      "mcp",
		Usage:     "Serve rule tools over MCP on stdio for editor integration",
		UsageText: "ruleport mcp [path] [options]",
		Description: `Exposes list_rules, render_rules, check_sync and sync_rules tools
   plus the ruleport://conventions resource. Logs go to stderr.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject(ctx, cmd)
			if err != nil {
				return err
			}

			logger := p.Logger.With(logging.Operation("mcp"))
			logger.Info("starting MCP server", logging.Path(p.Root))
			srv := mcpserver.New(mcpserver.Options{
				Paths:   p.Paths,
				Source:  p.Source,
				Targets: p.Targets,
				Version: Version,
				Logger:  logger,
			})
			return srv.ServeStdio()
		},
	}
}
