package target

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// consolidated renders every rule into one markdown document: always-apply
// rules first, then conditional ones. The output has no timestamp so an
// unchanged rule set always renders to identical bytes.
func consolidated(rules []model.Rule, paths model.PathConfig) string {
	var sb strings.Builder

	writeHeader(&sb, rules, paths)

	var always, conditional []model.Rule
	for _, r := range rules {
		if r.AlwaysApply {
			always = append(always, r)
		} else {
			conditional = append(conditional, r)
		}
	}

	if len(always) > 0 {
		sb.WriteString("# Always Apply Rules\n\n")
		sb.WriteString("These rules apply to all files:\n\n")
		for _, r := range always {
			writeSection(&sb, r, false)
		}
	}

	if len(conditional) > 0 {
		sb.WriteString("# Conditional Rules\n\n")
		sb.WriteString("These rules apply to specific file patterns:\n\n")
		for _, r := range conditional {
			writeSection(&sb, r, true)
		}
	}

	return sb.String()
}

func writeHeader(sb *strings.Builder, rules []model.Rule, paths model.PathConfig) {
	if len(rules) > 0 && rules[0].Source.IsValid() {
		src := rules[0].Source
		dir := filepath.ToSlash(paths.Rel(paths.RulesDir(src)))
		fmt.Fprintf(sb, "<!-- Auto-synced from %s/ -->\n", dir)
		fmt.Fprintf(sb, "<!-- DO NOT EDIT - Edit %s/%s instead -->\n\n", dir, sourcePattern(src))
		sb.WriteString("# AI Assistant Rules\n\n")
		fmt.Fprintf(sb, "This file consolidates all rules from %s configuration.\n\n", src)
	} else {
		sb.WriteString("<!-- Auto-synced by ruleport -->\n")
		sb.WriteString("<!-- DO NOT EDIT - Edit the source rules instead -->\n\n")
		sb.WriteString("# AI Assistant Rules\n\n")
	}
	sb.WriteString("---\n\n")
}

func writeSection(sb *strings.Builder, r model.Rule, showGlobs bool) {
	fmt.Fprintf(sb, "## %s\n\n", r.ID)
	if r.Description != "" {
		for _, line := range strings.Split(r.Description, "\n") {
			if line == "" {
				sb.WriteString(">\n")
				continue
			}
			sb.WriteString("> " + line + "\n")
		}
		sb.WriteString("\n")
	}
	if showGlobs && len(r.Globs) > 0 {
		fmt.Fprintf(sb, "**Applies to:** `%s`\n\n", strings.Join(r.Globs, "`, `"))
	}
	sb.WriteString(r.Body)
	sb.WriteString("\n\n---\n\n")
}

// sourcePattern is the per-rule file pattern of a source layout.
func sourcePattern(t model.Tool) string {
	switch t {
	case model.Cursor:
		return "*/RULE.md"
	case model.Copilot:
		return "*.instructions.md"
	default:
		return "*.md"
	}
}
