package target

import (
	"path/filepath"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// copilotTarget writes <rules>/<id>.instructions.md plus
// copilot-instructions.md. A rule without applyTo applies everywhere.
type copilotTarget struct{}

func (copilotTarget) Tool() model.Tool { return model.Copilot }

func (copilotTarget) Render(rules []model.Rule, paths model.PathConfig) (model.RenderResult, error) {
	dir, err := ruleDir(paths, model.Copilot)
	if err != nil {
		return model.RenderResult{}, err
	}

	result := model.RenderResult{Writes: make([]model.PlannedWrite, 0, len(rules)+1)}
	for _, r := range rules {
		fm := newFrontmatter()
		if r.Description != "" {
			fm.quoted("description", r.Description)
		}
		switch {
		case r.AlwaysApply:
		case len(r.Globs) > 0:
			fm.list("applyTo", r.Globs)
		default:
			result.Warnings = append(result.Warnings, unscopedWarning(r, model.Copilot))
		}

		head, err := fm.render()
		if err != nil {
			return model.RenderResult{}, err
		}
		result.Writes = append(result.Writes, model.PlannedWrite{
			Path:    filepath.Join(dir, r.ID+".instructions.md"),
			Content: document(head, r.Body),
		})
	}

	return withConsolidated(result, model.Copilot, rules, paths)
}
