// Package planner combines the output of several targets and compares it
// with what is currently on disk.
package planner

import (
	"fmt"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// Reader returns current file content. found is false for a missing file.
type Reader interface {
	ReadFile(path string) (content string, found bool, err error)
}

// DiffResult classifies planned writes against disk.
type DiffResult struct {
	Created   []string `json:"created"`
	Modified  []string `json:"modified"`
	Unchanged []string `json:"unchanged"`
	// HasDifferences is true when any write would create or change a file.
	HasDifferences bool `json:"hasDifferences"`
}

// Changed returns created and modified paths in that order.
func (d DiffResult) Changed() []string {
	out := make([]string, 0, len(d.Created)+len(d.Modified))
	out = append(out, d.Created...)
	return append(out, d.Modified...)
}

// Aggregate concatenates writes and warnings in the order given.
func Aggregate(results ...model.RenderResult) model.RenderResult {
	var out model.RenderResult
	for _, r := range results {
		out.Writes = append(out.Writes, r.Writes...)
		out.Warnings = append(out.Warnings, r.Warnings...)
	}
	return out
}

// ComputeDiff compares each planned write with the file at its path. It
// only reads. Content is compared byte for byte.
func ComputeDiff(r Reader, writes []model.PlannedWrite) (DiffResult, error) {
	diff := DiffResult{
		Created:   []string{},
		Modified:  []string{},
		Unchanged: []string{},
	}

	for _, w := range writes {
		current, found, err := r.ReadFile(w.Path)
		if err != nil {
			return DiffResult{}, fmt.Errorf("diff %s: %w", w.Path, err)
		}
		switch {
		case !found:
			diff.Created = append(diff.Created, w.Path)
		case current != w.Content:
			diff.Modified = append(diff.Modified, w.Path)
		default:
			diff.Unchanged = append(diff.Unchanged, w.Path)
		}
	}

	diff.HasDifferences = len(diff.Created) > 0 || len(diff.Modified) > 0
	return diff, nil
}
