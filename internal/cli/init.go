package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/config"
	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/scaffold"
	"github.com/lewiesnyder/RulePort/internal/storage"
	"github.com/lewiesnyder/RulePort/internal/ui"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create example rules in a tool's convention",
		UsageText: "ruleport init [path] [--tool cursor]",
		Description: `Writes a general always-on rule plus Go and TypeScript scoped rules.
   Existing files are never overwritten. With --write-config, a
   .ruleport.yaml naming the scaffolded tool as source is created too.

   Examples:
     ruleport init
     ruleport init --tool kiro --write-config ./my-project`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tool",
				Usage: "convention to scaffold (default: the configured source)",
			},
			&cli.BoolFlag{
				Name:  "write-config",
				Usage: "also create .ruleport.yaml with the scaffolded tool as source",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject(ctx, cmd)
			if err != nil {
				return err
			}

			tool := p.Source
			if name := cmd.String("tool"); name != "" {
				if tool, err = model.ParseTool(name); err != nil {
					return err
				}
			}

			gen, err := scaffold.New()
			if err != nil {
				return err
			}

			fmt.Printf("🚀 Initializing %s rules in %s/\n\n", tool.DisplayName(), p.Paths.Rel(p.Paths.RulesDir(tool)))
			res, err := gen.Init(storage.New(), tool, p.Paths)
			if res != nil {
				for _, path := range res.Files {
					fmt.Printf("   %s\n", ui.StatusCreate(p.Paths.Rel(path)))
				}
				for _, id := range res.Skipped {
					fmt.Printf("   %s\n", ui.StatusSkipped(id+" already exists"))
				}
			}
			if err != nil {
				return err
			}
			if cmd.Bool("write-config") {
				if err := writeConfig(p, tool); err != nil {
					return err
				}
			}

			fmt.Printf("\n%s\n", ui.StatusSuccess(fmt.Sprintf("Created %d rule(s), skipped %d", len(res.Created), len(res.Skipped))))
			if len(res.Created) > 0 {
				fmt.Println("Run 'ruleport sync' to convert them for the other tools.")
			}
			return nil
		},
	}
}

// writeConfig saves a default configuration reading from tool. An existing
// config file is left alone.
func writeConfig(p *project, tool model.Tool) error {
	path := config.FilePath(p.Root)
	if config.Exists(p.Root) {
		fmt.Printf("   %s\n", ui.StatusSkipped(p.Paths.Rel(path)+" already exists"))
		return nil
	}
	cfg := config.Default()
	cfg.Source = tool.String()
	if err := cfg.SaveToPath(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("   %s\n", ui.StatusCreate(p.Paths.Rel(path)))
	return nil
}
