package target

import (
	"path/filepath"
	"strings"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// windsurfTarget writes <rules>/<id>.md. Glob triggers carry their patterns
// as one comma separated string, or as a sequence when a pattern itself
// contains a comma.
type windsurfTarget struct{}

func (windsurfTarget) Tool() model.Tool { return model.Windsurf }

func (windsurfTarget) Render(rules []model.Rule, paths model.PathConfig) (model.RenderResult, error) {
	dir, err := ruleDir(paths, model.Windsurf)
	if err != nil {
		return model.RenderResult{}, err
	}

	result := model.RenderResult{Writes: make([]model.PlannedWrite, 0, len(rules))}
	for _, r := range rules {
		fm := newFrontmatter()
		switch {
		case r.AlwaysApply:
			fm.word("trigger", "always_on")
		case len(r.Globs) > 0:
			fm.word("trigger", "glob")
			if hasComma(r.Globs) {
				fm.list("globs", r.Globs)
			} else {
				fm.quoted("globs", strings.Join(r.Globs, ", "))
			}
		default:
			fm.word("trigger", "always_on")
			result.Warnings = append(result.Warnings, unscopedWarning(r, model.Windsurf))
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

func hasComma(globs []string) bool {
	for _, g := range globs {
		if strings.Contains(g, ",") {
			return true
		}
	}
	return false
}
