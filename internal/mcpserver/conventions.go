package mcpserver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lewiesnyder/RulePort/internal/model"
)

var scopeFields = map[model.Tool]string{
	model.Cursor:      "`alwaysApply: true`, or `globs:` list",
	model.Claude:      "`always_apply: true`, or `paths:` list",
	model.Copilot:     "no `applyTo` means always; `applyTo:` comma separated globs",
	model.Antigravity: "no `globs` means always; `globs:` list",
	model.Kiro:        "`inclusion: always`, or `inclusion: fileMatch` with `fileMatchPattern`",
	model.Windsurf:    "`trigger: always_on`, or `trigger: glob` with `globs: \"a, b\"`",
}

var fileLayouts = map[model.Tool]string{
	model.Cursor:      "<id>/RULE.md",
	model.Claude:      "<id>.md",
	model.Copilot:     "<id>.instructions.md",
	model.Antigravity: "<id>.md",
	model.Kiro:        "<id>.md",
	model.Windsurf:    "<id>.md",
}

// Conventions describes each tool's default layout as a markdown table.
func Conventions() string {
	var sb strings.Builder
	sb.WriteString("# Rule File Conventions\n\n")
	sb.WriteString("| Tool | Rule files | Aggregate file | Scope fields |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, t := range model.AllTools() {
		aggregate := "-"
		if f, ok := model.DefaultConsolidatedFiles[t]; ok {
			aggregate = "`" + filepath.ToSlash(f) + "`"
		}
		sb.WriteString(fmt.Sprintf("| %s | `%s/%s` | %s | %s |\n",
			t.DisplayName(),
			filepath.ToSlash(model.DefaultRulesDirs[t]),
			fileLayouts[t],
			aggregate,
			scopeFields[t],
		))
	}
	return sb.String()
}
