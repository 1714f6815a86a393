package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/planner"
	"github.com/lewiesnyder/RulePort/internal/source"
	"github.com/lewiesnyder/RulePort/internal/storage"
	"github.com/lewiesnyder/RulePort/internal/target"
)

// FileSystem is everything a run needs from disk.
type FileSystem interface {
	source.FileSystem
	WriteFile(path, content string) error
}

// ProgressFunc is called after each file is written.
type ProgressFunc func(done, total int, path string)

// Options configures a run.
type Options struct {
	// Source is the tool whose rule directory is read.
	Source model.Tool
	// Targets are rendered in order. Empty means model.DefaultTargets.
	Targets []model.Tool
	// Paths locates every tool under the project root.
	Paths model.PathConfig
	// DryRun computes the diff without writing.
	DryRun bool
	// FS defaults to the local file system.
	FS FileSystem
	// Logger defaults to logging.Default.
	Logger *slog.Logger
	// Progress, when set, is told about each write.
	Progress ProgressFunc
}

func (o *Options) defaults() {
	if len(o.Targets) == 0 {
		o.Targets = model.DefaultTargets()
	}
	if o.FS == nil {
		o.FS = storage.New()
	}
	if o.Logger == nil {
		o.Logger = logging.Default()
	}
}

// Run loads the source rules and processes every target. The returned error
// covers configuration problems only; per-target failures are in the result.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.defaults()
	logger := opts.Logger
	defer logging.Timer(logger, operation(opts.DryRun))()

	if !opts.Source.IsValid() {
		return nil, fmt.Errorf("source: %w %q", model.ErrUnknownTool, opts.Source)
	}
	for _, t := range opts.Targets {
		if !t.IsValid() {
			return nil, fmt.Errorf("target: %w %q", model.ErrUnknownTool, t)
		}
	}

	dir := opts.Paths.RulesDir(opts.Source)
	loaded, err := source.LoadRulesFS(opts.FS, opts.Source, dir)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Source:       opts.Source,
		SourceDir:    dir,
		Rules:        loaded.Rules,
		LoadWarnings: loaded.Warnings,
		DryRun:       opts.DryRun,
	}
	for _, w := range loaded.Warnings {
		logger.Warn(w, logging.Tool(opts.Source.String()))
	}
	for _, r := range loaded.Rules {
		logger.Log(ctx, logging.LevelTrace, "rule loaded",
			logging.Rule(r.ID),
			slog.Bool("conditional", r.Conditional()),
			logging.Count(len(r.Globs)),
		)
	}
	logger.Info("loaded rules",
		logging.Tool(opts.Source.String()),
		logging.Path(dir),
		logging.Count(len(loaded.Rules)),
	)

	if len(loaded.Rules) == 0 {
		return res, nil
	}

	for _, tool := range opts.Targets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Targets = append(res.Targets, runTarget(tool, loaded.Rules, opts))
	}
	return res, nil
}

// Sync writes every target.
func Sync(ctx context.Context, opts Options) (*Result, error) {
	opts.DryRun = false
	return Run(ctx, opts)
}

// Check plans every target without writing. It returns ErrDrift alongside
// the result when any file would change.
func Check(ctx context.Context, opts Options) (*Result, error) {
	opts.DryRun = true
	res, err := Run(ctx, opts)
	if err != nil {
		return res, err
	}
	if res.HasDrift() {
		return res, ErrDrift
	}
	return res, nil
}

func runTarget(tool model.Tool, rules []model.Rule, opts Options) TargetResult {
	logger := opts.Logger.With(logging.Tool(tool.String()))
	tr := TargetResult{Tool: tool}

	t, err := target.Get(tool)
	if err != nil {
		tr.Err = err
		return tr
	}

	rendered, err := target.SafeRender(t, rules, opts.Paths)
	if err != nil {
		logger.Error("render failed", logging.Err(err))
		tr.Err = err
		return tr
	}
	tr.Writes = rendered.Writes
	tr.Warnings = rendered.Warnings
	for _, w := range rendered.Warnings {
		logger.Warn(w)
	}

	diff, err := planner.ComputeDiff(opts.FS, rendered.Writes)
	if err != nil {
		logger.Error("diff failed", logging.Err(err))
		tr.Err = err
		return tr
	}
	tr.Diff = diff
	logger.Debug("planned writes",
		logging.Count(len(rendered.Writes)),
		slog.Int("created", len(diff.Created)),
		slog.Int("modified", len(diff.Modified)),
	)

	if opts.DryRun {
		return tr
	}

	changed := diff.Changed()
	byPath := make(map[string]string, len(rendered.Writes))
	for _, w := range rendered.Writes {
		byPath[w.Path] = w.Content
	}
	for i, path := range changed {
		if err := opts.FS.WriteFile(path, byPath[path]); err != nil {
			logger.Error("write failed", logging.Path(path), logging.Err(err))
			tr.Err = fmt.Errorf("write %s: %w", opts.Paths.Rel(path), err)
			return tr
		}
		tr.Written++
		logger.Log(context.Background(), logging.LevelTrace, "wrote file", logging.Path(path))
		if opts.Progress != nil {
			opts.Progress(i+1, len(changed), path)
		}
	}
	return tr
}

func operation(dryRun bool) string {
	if dryRun {
		return "check"
	}
	return "sync"
}
