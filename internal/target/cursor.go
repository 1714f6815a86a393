package target

import (
	"path/filepath"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// cursorTarget writes <rules>/<id>/RULE.md with description, globs and
// alwaysApply. Cursor reads the files directly, there is no aggregate.
type cursorTarget struct{}

func (cursorTarget) Tool() model.Tool { return model.Cursor }

func (cursorTarget) Render(rules []model.Rule, paths model.PathConfig) (model.RenderResult, error) {
	dir, err := ruleDir(paths, model.Cursor)
	if err != nil {
		return model.RenderResult{}, err
	}

	result := model.RenderResult{Writes: make([]model.PlannedWrite, 0, len(rules))}
	for _, r := range rules {
		fm := newFrontmatter()
		if r.Description != "" {
			fm.quoted("description", r.Description)
		}
		if len(r.Globs) > 0 {
			fm.list("globs", r.Globs)
		}
		fm.boolean("alwaysApply", r.AlwaysApply)

		head, err := fm.render()
		if err != nil {
			return model.RenderResult{}, err
		}
		result.Writes = append(result.Writes, model.PlannedWrite{
			Path:    filepath.Join(dir, r.ID, "RULE.md"),
			Content: document(head, r.Body),
		})
	}
	return result, nil
}
