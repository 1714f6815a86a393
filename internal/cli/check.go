package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/sync"
	"github.com/lewiesnyder/RulePort/internal/ui"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Report files a sync would create or modify, without writing",
		UsageText: "ruleport check [path] [tool...] [options]",
		Description: `Exits with a non-zero status when any target is out of date, which
   makes it suitable for CI.

   Examples:
     ruleport check
     ruleport check --source windsurf copilot`,
		Action: checkAction,
	}
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(ctx, cmd)
	if err != nil {
		return err
	}

	fmt.Println("🔍 Checking sync status...")
	fmt.Println()

	res, err := sync.Check(ctx, sync.Options{
		Source:  p.Source,
		Targets: p.Targets,
		Paths:   p.Paths,
		Logger:  p.Logger,
	})
	if err != nil && !errors.Is(err, sync.ErrDrift) {
		return err
	}

	if len(res.Rules) == 0 {
		fmt.Printf("No rules found in %s source directory.\n", p.Source.DisplayName())
		return nil
	}

	for _, tr := range res.Failed() {
		fmt.Println(ui.StatusError(fmt.Sprintf("%s: %v", tr.Tool.DisplayName(), tr.Err)))
	}

	drift := res.Drift()
	if !drift.HasDifferences {
		if failErr := res.Err(); failErr != nil {
			return failErr
		}
		fmt.Println(ui.Success("All files are in sync! ✨"))
		return nil
	}

	fmt.Println(ui.Warning("Drift detected!"))
	fmt.Println()
	if len(drift.Created) > 0 {
		fmt.Printf("Files that would be created (%d):\n", len(drift.Created))
		for _, path := range drift.Created {
			fmt.Printf("  %s\n", ui.StatusCreate(p.Paths.Rel(path)))
		}
		fmt.Println()
	}
	if len(drift.Modified) > 0 {
		fmt.Printf("Files that would be modified (%d):\n", len(drift.Modified))
		for _, path := range drift.Modified {
			fmt.Printf("  %s\n", ui.StatusModify(p.Paths.Rel(path)))
		}
		fmt.Println()
	}
	fmt.Println("Run 'ruleport sync' to update files.")

	return errors.Join(sync.ErrDrift, res.Err())
}
