package target

import (
	"path/filepath"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// claudeTarget writes <rules>/<id>.md with description, paths and
// always_apply, plus the CLAUDE.md aggregate.
type claudeTarget struct{}

func (claudeTarget) Tool() model.Tool { return model.Claude }

func (claudeTarget) Render(rules []model.Rule, paths model.PathConfig) (model.RenderResult, error) {
	dir, err := ruleDir(paths, model.Claude)
	if err != nil {
		return model.RenderResult{}, err
	}

	result := model.RenderResult{Writes: make([]model.PlannedWrite, 0, len(rules)+1)}
	for _, r := range rules {
		fm := newFrontmatter()
		if r.Description != "" {
			fm.quoted("description", r.Description)
		}
		if len(r.Globs) > 0 {
			fm.list("paths", r.Globs)
		}
		fm.boolean("always_apply", r.AlwaysApply)

		head, err := fm.render()
		if err != nil {
			return model.RenderResult{}, err
		}
		result.Writes = append(result.Writes, model.PlannedWrite{
			Path:    filepath.Join(dir, r.ID+".md"),
			Content: document(head, r.Body),
		})
	}

	return withConsolidated(result, model.Claude, rules, paths)
}

// withConsolidated appends the aggregate document for tool.
func withConsolidated(result model.RenderResult, tool model.Tool, rules []model.Rule, paths model.PathConfig) (model.RenderResult, error) {
	path, ok := paths.ConsolidatedFile(tool)
	if !ok {
		result.Warnings = append(result.Warnings, "no consolidated file configured for "+tool.DisplayName())
		return result, nil
	}
	result.Writes = append(result.Writes, model.PlannedWrite{
		Path:    path,
		Content: consolidated(rules, paths),
	})
	return result, nil
}
