package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/progress"
	"github.com/lewiesnyder/RulePort/internal/sync"
	"github.com/lewiesnyder/RulePort/internal/ui"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Convert source rules and write them for every target tool",
		UsageText: "ruleport sync [path] [tool...] [options]",
		Description: `Loads rules from the source tool's directory, renders them for each
   target and writes only the files whose content changed.

   Examples:
     ruleport sync
     ruleport sync ./my-project kiro windsurf
     ruleport sync --source claude --target cursor`,
		Action: syncAction,
	}
}

func syncAction(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(ctx, cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("watch") {
		return runWatch(ctx, p)
	}
	_, err = runSync(ctx, p)
	return err
}

// runSync performs one sync and prints the report. The returned error is
// non-nil when the run could not start or any target failed.
func runSync(ctx context.Context, p *project) (*sync.Result, error) {
	fmt.Printf("🔄 Syncing AI rules (Source: %s)...\n\n", p.Source.DisplayName())

	reporter := &progressReporter{logger: p.Logger}
	res, err := sync.Sync(ctx, sync.Options{
		Source:   p.Source,
		Targets:  p.Targets,
		Paths:    p.Paths,
		Logger:   p.Logger,
		Progress: reporter.report,
	})
	reporter.finish()
	if err != nil {
		return res, err
	}

	if len(res.Rules) == 0 {
		fmt.Printf("No rules found in %s source directory.\n", p.Source.DisplayName())
		fmt.Println("Create rule files to get started.")
		return res, nil
	}

	printRules(res.Rules)
	for _, tr := range res.Targets {
		printTarget(p, tr)
	}
	printWarnings(res.Warnings())

	fmt.Println()
	fmt.Println(tallyTable(p, res))
	fmt.Printf("📊 Sync complete: %d succeeded, %d failed\n", res.Succeeded(), len(res.Failed()))
	return res, res.Err()
}

func printRules(rules []model.Rule) {
	fmt.Printf("📋 Found %d rule(s):\n", len(rules))
	for _, r := range rules {
		line := fmt.Sprintf("   - %s (%d pattern(s))", r.ID, len(r.Globs))
		if r.AlwaysApply {
			line += " " + ui.Info("[always]")
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func printTarget(p *project, tr sync.TargetResult) {
	fmt.Printf("📝 Syncing to %s...\n", tr.Tool.DisplayName())
	if !tr.Success() {
		fmt.Printf("   %s\n\n", ui.StatusError(fmt.Sprintf("Error: %v", tr.Err)))
		return
	}

	dir := p.Paths.RulesDir(tr.Tool)
	consolidated, hasConsolidated := p.Paths.ConsolidatedFile(tr.Tool)
	files := 0
	wroteConsolidated := false
	for _, w := range tr.Writes {
		switch {
		case hasConsolidated && w.Path == consolidated:
			wroteConsolidated = true
		case strings.HasPrefix(w.Path, dir+string(filepath.Separator)):
			files++
		}
	}

	fmt.Printf("   %s\n", ui.StatusSuccess(fmt.Sprintf("Created %d %s in %s/", files, fileNoun(tr.Tool), p.Paths.Rel(dir))))
	if wroteConsolidated {
		fmt.Printf("   %s\n", ui.StatusSuccess("Created consolidated "+p.Paths.Rel(consolidated)))
	}
	fmt.Println()
}

func fileNoun(t model.Tool) string {
	switch t {
	case model.Copilot:
		return "instruction file(s)"
	case model.Kiro:
		return "steering file(s)"
	default:
		return "rule file(s)"
	}
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println(ui.Warning("Warnings:"))
	for _, w := range warnings {
		fmt.Printf("   %s\n", ui.StatusWarning(w))
	}
	fmt.Println()
}

// tallyTable lists each target with its planned, changed and written files.
func tallyTable(p *project, res *sync.Result) string {
	t := ui.NewTable("TARGET", "FILES", "CHANGED", "WRITTEN", "STATUS")
	for _, tr := range res.Targets {
		status := ui.Success("ok")
		if !tr.Success() {
			status = ui.Error("failed")
		}
		t.AddRow(
			tr.Tool.DisplayName(),
			fmt.Sprint(len(tr.Writes)),
			fmt.Sprint(len(tr.Diff.Changed())),
			fmt.Sprint(tr.Written),
			status,
		)
	}
	return t.Render()
}

// progressReporter shows one bar per target while files are written.
type progressReporter struct {
	logger *slog.Logger
	bar    *progress.Bar
}

func (r *progressReporter) report(done, total int, path string) {
	if r.bar == nil || done == 1 {
		r.finish()
		r.bar = progress.New(progress.Options{
			Total:       total,
			Description: "Writing rule files",
			Logger:      r.logger,
		})
	}
	r.bar.Describe(filepath.Base(path))
	_ = r.bar.Add(1)
}

func (r *progressReporter) finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}
