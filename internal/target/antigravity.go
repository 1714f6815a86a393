package target

import (
	"path/filepath"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// antigravityTarget writes <rules>/<id>.md plus GEMINI.md. Scope is carried
// by globs alone: none means every file.
type antigravityTarget struct{}

func (antigravityTarget) Tool() model.Tool { return model.Antigravity }

func (antigravityTarget) Render(rules []model.Rule, paths model.PathConfig) (model.RenderResult, error) {
	dir, err := ruleDir(paths, model.Antigravity)
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
			fm.list("globs", r.Globs)
		default:
			result.Warnings = append(result.Warnings, unscopedWarning(r, model.Antigravity))
		}

		head, err := fm.render()
		if err != nil {
			return model.RenderResult{}, err
		}
		result.Writes = append(result.Writes, model.PlannedWrite{
			Path:    filepath.Join(dir, r.ID+".md"),
			Content: document(head, r.Body),
		})
	}

	return withConsolidated(result, model.Antigravity, rules, paths)
}
