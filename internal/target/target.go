// Package target renders model.Rule values into the files each tool expects.
//
// Targets never touch the file system. They return planned writes which the
// caller can diff against disk or apply.
package target

import (
	"fmt"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// Target renders rules for one tool.
type Target interface {
	Tool() model.Tool
	Render(rules []model.Rule, paths model.PathConfig) (model.RenderResult, error)
}

var registry = map[model.Tool]Target{
	model.Cursor:      cursorTarget{},
	model.Claude:      claudeTarget{},
	model.Copilot:     copilotTarget{},
	model.Antigravity: antigravityTarget{},
	model.Kiro:        kiroTarget{},
	model.Windsurf:    windsurfTarget{},
}

// Get returns the target registered for tool.
func Get(tool model.Tool) (Target, error) {
	t, ok := registry[tool]
	if !ok {
		return nil, fmt.Errorf("%w %q", model.ErrUnknownTool, tool)
	}
	return t, nil
}

// Render renders rules for tool. A panic inside the target is returned as an
// error so one broken target cannot take down a multi-target run.
func Render(tool model.Tool, rules []model.Rule, paths model.PathConfig) (result model.RenderResult, err error) {
	t, err := Get(tool)
	if err != nil {
		return model.RenderResult{}, err
	}
	return SafeRender(t, rules, paths)
}

// SafeRender calls t.Render and converts a panic into an error.
func SafeRender(t Target, rules []model.Rule, paths model.PathConfig) (result model.RenderResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = model.RenderResult{}
			err = fmt.Errorf("render %s: panic: %v", t.Tool(), r)
		}
	}()
	return t.Render(rules, paths)
}

// ruleDir returns the configured rule directory for tool or an error when
// the path configuration has none.
func ruleDir(paths model.PathConfig, tool model.Tool) (string, error) {
	dir := paths.RulesDir(tool)
	if dir == "" {
		return "", fmt.Errorf("no rules directory configured for %s", tool)
	}
	return dir, nil
}

// document joins rendered frontmatter and a body.
func document(frontmatter, body string) string {
	if body == "" {
		return frontmatter
	}
	return frontmatter + "\n" + body + "\n"
}

func unscopedWarning(rule model.Rule, tool model.Tool) string {
	return fmt.Sprintf("rule %q is conditional but has no glob patterns; rendered as always-on for %s",
		rule.ID, tool.DisplayName())
}
