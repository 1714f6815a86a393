package target

import (
	"strings"
	"testing"

	"github.com/lewiesnyder/RulePort/internal/model"
)

func TestConsolidated(t *testing.T) {
	paths := model.DefaultPaths(testRoot)
	plain := model.Rule{ID: "plain", Title: "plain", Body: "Plain body.", Globs: []string{}, Source: model.Cursor}
	multi := noConsole()
	multi.Globs = []string{"*.ts", "*.tsx"}

	got := consolidated([]model.Rule{multi, general(), plain}, paths)

	want := "<!-- Auto-synced from .cursor/rules/ -->\n" +
		"<!-- DO NOT EDIT - Edit .cursor/rules/*/RULE.md instead -->\n\n" +
		"# AI Assistant Rules\n\n" +
		"This file consolidates all rules from cursor configuration.\n\n" +
		"---\n\n" +
		"# Always Apply Rules\n\n" +
		"These rules apply to all files:\n\n" +
		"## general\n\n" +
		"> House style\n\n" +
		"Write tests.\n\n---\n\n" +
		"# Conditional Rules\n\n" +
		"These rules apply to specific file patterns:\n\n" +
		"## no-console\n\n" +
		"> Disallow console.log\n\n" +
		"**Applies to:** `*.ts`, `*.tsx`\n\n" +
		"# No console.log\nUse a logger instead.\n\n---\n\n" +
		"## plain\n\n" +
		"Plain body.\n\n---\n\n"

	if got != want {
		t.Errorf("consolidated() =\n%s\nwant\n%s", got, want)
	}
}

func TestConsolidated_SourceHeader(t *testing.T) {
	paths := model.DefaultPaths(testRoot)

	tests := map[string]struct {
		source model.Tool
		want   string
	}{
		"copilot":  {source: model.Copilot, want: "Edit .github/instructions/*.instructions.md instead"},
		"kiro":     {source: model.Kiro, want: "Edit .kiro/steering/*.md instead"},
		"windsurf": {source: model.Windsurf, want: "<!-- Auto-synced from .windsurf/rules/ -->"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rule := general()
			rule.Source = tt.source
			got := consolidated([]model.Rule{rule}, paths)
			if !strings.Contains(got, tt.want) {
				t.Errorf("header missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestConsolidated_MultiLineDescription(t *testing.T) {
	rule := general()
	rule.Description = "House style\n\nApplies to every package"

	got := consolidated([]model.Rule{rule}, model.DefaultPaths(testRoot))

	want := "## general\n\n" +
		"> House style\n" +
		">\n" +
		"> Applies to every package\n\n" +
		"Write tests.\n\n---\n\n"
	if !strings.Contains(got, want) {
		t.Errorf("every description line should be quoted, got:\n%s", got)
	}
}

func TestConsolidated_Empty(t *testing.T) {
	got := consolidated(nil, model.DefaultPaths(testRoot))
	if !strings.HasPrefix(got, "<!-- Auto-synced by ruleport -->") {
		t.Errorf("empty consolidated header = %q", got)
	}
	if strings.Contains(got, "# Always Apply Rules") || strings.Contains(got, "# Conditional Rules") {
		t.Errorf("empty consolidated should have no sections:\n%s", got)
	}
}

func TestConsolidated_OnlyForAggregatingTools(t *testing.T) {
	paths := model.DefaultPaths(testRoot)
	rules := []model.Rule{general()}

	for _, tool := range model.AllTools() {
		result, err := Render(tool, rules, paths)
		if err != nil {
			t.Fatal(err)
		}
		_, wantAggregate := paths.ConsolidatedFile(tool)
		hasAggregate := len(result.Writes) == len(rules)+1
		if hasAggregate != wantAggregate {
			t.Errorf("%s: consolidated write present = %v, want %v", tool, hasAggregate, wantAggregate)
		}
	}
}
