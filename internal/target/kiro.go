package target

import (
	"path/filepath"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// kiroTarget writes steering files. fileMatchPattern is a scalar for one
// glob and a sequence for several.
type kiroTarget struct{}

func (kiroTarget) Tool() model.Tool { return model.Kiro }

func (kiroTarget) Render(rules []model.Rule, paths model.PathConfig) (model.RenderResult, error) {
	dir, err := ruleDir(paths, model.Kiro)
	if err != nil {
		return model.RenderResult{}, err
	}

	result := model.RenderResult{Writes: make([]model.PlannedWrite, 0, len(rules))}
	for _, r := range rules {
		fm := newFrontmatter()
		switch {
		case r.AlwaysApply:
			fm.word("inclusion", "always")
		case len(r.Globs) == 1:
			fm.word("inclusion", "fileMatch")
			fm.quoted("fileMatchPattern", r.Globs[0])
		case len(r.Globs) > 1:
			fm.word("inclusion", "fileMatch")
			fm.list("fileMatchPattern", r.Globs)
		default:
			fm.word("inclusion", "always")
			result.Warnings = append(result.Warnings, unscopedWarning(r, model.Kiro))
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
	return result, nil
}
