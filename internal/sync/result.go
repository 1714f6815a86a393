package sync

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/planner"
)

// ErrDrift is returned by Check when files on disk differ from the rendered rules.
var ErrDrift = errors.New("rule files are out of sync")

// TargetResult is the outcome for one target tool.
type TargetResult struct {
	Tool model.Tool
	// Writes are all files the target rendered, changed or not.
	Writes   []model.PlannedWrite
	Warnings []string
	// Diff classifies Writes against disk before anything was written.
	Diff planner.DiffResult
	// Written counts files actually written.
	Written int
	Err     error
}

// Success reports whether the target rendered and wrote without error.
func (tr TargetResult) Success() bool {
	return tr.Err == nil
}

// Result contains the complete outcome of a run.
type Result struct {
	Source       model.Tool
	SourceDir    string
	Rules        []model.Rule
	LoadWarnings []string
	Targets      []TargetResult
	DryRun       bool
}

// Succeeded returns the number of targets without errors.
func (r *Result) Succeeded() int {
	n := 0
	for _, tr := range r.Targets {
		if tr.Success() {
			n++
		}
	}
	return n
}

// Failed returns the targets that reported an error.
func (r *Result) Failed() []TargetResult {
	var failed []TargetResult
	for _, tr := range r.Targets {
		if !tr.Success() {
			failed = append(failed, tr)
		}
	}
	return failed
}

// Warnings returns load warnings followed by each target's warnings.
func (r *Result) Warnings() []string {
	out := append([]string(nil), r.LoadWarnings...)
	for _, tr := range r.Targets {
		out = append(out, tr.Warnings...)
	}
	return out
}

// Drift merges the diffs of all successful targets.
func (r *Result) Drift() planner.DiffResult {
	d := planner.DiffResult{Created: []string{}, Modified: []string{}, Unchanged: []string{}}
	for _, tr := range r.Targets {
		if !tr.Success() {
			continue
		}
		d.Created = append(d.Created, tr.Diff.Created...)
		d.Modified = append(d.Modified, tr.Diff.Modified...)
		d.Unchanged = append(d.Unchanged, tr.Diff.Unchanged...)
	}
	d.HasDifferences = len(d.Created) > 0 || len(d.Modified) > 0
	return d
}

// HasDrift reports whether any target would create or modify a file.
func (r *Result) HasDrift() bool {
	return r.Drift().HasDifferences
}

// Err joins the per-target errors, or returns nil when every target succeeded.
func (r *Result) Err() error {
	var errs []error
	for _, tr := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", tr.Tool, tr.Err))
	}
	return errors.Join(errs...)
}

// Summary returns a human-readable tally of the run.
func (r *Result) Summary() string {
	var sb strings.Builder

	if r.DryRun {
		sb.WriteString("Dry run - no changes made\n")
	}

	sb.WriteString(fmt.Sprintf("Sync complete: %d succeeded, %d failed\n", r.Succeeded(), len(r.Failed())))

	if failed := r.Failed(); len(failed) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, tr := range failed {
			sb.WriteString(fmt.Sprintf("  - %s: %v\n", tr.Tool.DisplayName(), tr.Err))
		}
	}

	return sb.String()
}
