package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/config"
	"github.com/lewiesnyder/RulePort/internal/detector"
	"github.com/lewiesnyder/RulePort/internal/storage"
	"github.com/lewiesnyder/RulePort/internal/ui"
)

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Show which tool conventions exist in a project",
		UsageText: "ruleport status [path] [options]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject(ctx, cmd)
			if err != nil {
				return err
			}

			detected := detector.DetectAll(storage.New(), p.Paths)

			fmt.Printf("Project: %s\n", p.Root)
			if config.Exists(p.Root) {
				fmt.Printf("Config:  %s\n", p.Paths.Rel(config.FilePath(p.Root)))
			}
			fmt.Printf("Source:  %s\n\n", p.Source.DisplayName())

			t := ui.NewTable("TOOL", "RULES DIR", "RULES", "CONSOLIDATED")
			for _, d := range detected {
				rules := ui.Dim("-")
				if d.Present {
					rules = fmt.Sprint(d.Rules)
				}
				t.AddRow(d.Tool.DisplayName(), dirCell(p, d), rules, consolidatedCell(p, d))
			}
			fmt.Println(t.Render())

			var warnings []string
			for _, d := range detected {
				for _, w := range d.Warnings {
					warnings = append(warnings, fmt.Sprintf("%s: %s", d.Tool.DisplayName(), w))
				}
			}
			printWarnings(warnings)

			if tool, ok := detector.SuggestSource(detected); ok && tool != p.Source {
				fmt.Println(ui.Info(fmt.Sprintf("Tip: %s has the most rules; try 'ruleport --source %s'.", tool.DisplayName(), tool)))
			}
			return nil
		},
	}
}

func dirCell(p *project, d detector.Detected) string {
	rel := p.Paths.Rel(d.RulesDir)
	if d.Present {
		return ui.StatusSuccess(rel)
	}
	return ui.StatusSkipped(rel)
}

func consolidatedCell(p *project, d detector.Detected) string {
	switch {
	case d.ConsolidatedFile == "":
		return ui.Dim("n/a")
	case d.ConsolidatedPresent:
		return ui.StatusSuccess(p.Paths.Rel(d.ConsolidatedFile))
	default:
		return ui.StatusSkipped(p.Paths.Rel(d.ConsolidatedFile))
	}
}
