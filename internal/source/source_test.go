package source

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/util"
)

type wantRule struct {
	id          string
	description string
	alwaysApply bool
	globs       []string
	body        string
}

func TestLoadRules(t *testing.T) {
	tests := map[string]struct {
		tool  model.Tool
		files map[string]string
		want  []wantRule
	}{
		"cursor subdirectories": {
			tool: model.Cursor,
			files: map[string]string{
				"no-console/RULE.md": "---\ndescription: \"Disallow console.log\"\nglobs:\n  - \"*.ts\"\nalwaysApply: false\n---\n# No console.log\nUse a logger instead.\n",
				"general/RULE.md":    "---\nalwaysApply: true\n---\nBe kind.",
				"empty-dir/.keep":    "",
			},
			want: []wantRule{
				{id: "general", alwaysApply: true, globs: []string{}, body: "Be kind."},
				{id: "no-console", description: "Disallow console.log", globs: []string{"*.ts"}, body: "# No console.log\nUse a logger instead."},
			},
		},
		"cursor alwaysApply must be a boolean": {
			tool: model.Cursor,
			files: map[string]string{
				"quoted/RULE.md": "---\nalwaysApply: \"true\"\nglobs: [\"*.go\"]\n---\nbody",
			},
			want: []wantRule{
				{id: "quoted", globs: []string{"*.go"}, body: "body"},
			},
		},
		"claude paths and always_apply": {
			tool: model.Claude,
			files: map[string]string{
				"api.md":    "---\ndescription: API rules\npaths:\n  - \"src/api/**\"\n  - \"*.proto\"\n---\nAPI body",
				"always.md": "---\nalways_apply: true\n---\nAlways body",
				"notes.txt": "ignored",
			},
			want: []wantRule{
				{id: "always", alwaysApply: true, globs: []string{}, body: "Always body"},
				{id: "api", description: "API rules", globs: []string{"src/api/**", "*.proto"}, body: "API body"},
			},
		},
		"copilot suffix and applyTo": {
			tool: model.Copilot,
			files: map[string]string{
				"ts.instructions.md":     "---\napplyTo:\n  - \"**/*.ts\"\n---\nTS body",
				"global.instructions.md": "---\ndescription: everywhere\n---\nGlobal body",
				"comma.instructions.md":  "---\napplyTo: \"**/*.js, **/*.jsx\"\n---\nJS body",
				"README.md":              "not an instruction file",
			},
			want: []wantRule{
				{id: "comma", globs: []string{"**/*.js", "**/*.jsx"}, body: "JS body"},
				{id: "global", description: "everywhere", alwaysApply: true, globs: []string{}, body: "Global body"},
				{id: "ts", globs: []string{"**/*.ts"}, body: "TS body"},
			},
		},
		"antigravity globs decide scope": {
			tool: model.Antigravity,
			files: map[string]string{
				"a.md": "---\nglobs:\n  - \"*.py\"\n---\nPython",
				"b.md": "---\nglobs: []\n---\nEverything",
				"c.md": "No frontmatter at all\n",
			},
			want: []wantRule{
				{id: "a", globs: []string{"*.py"}, body: "Python"},
				{id: "b", alwaysApply: true, globs: []string{}, body: "Everything"},
				{id: "c", alwaysApply: true, globs: []string{}, body: "No frontmatter at all"},
			},
		},
		"kiro inclusion vocabulary": {
			tool: model.Kiro,
			files: map[string]string{
				"always.md":  "---\ninclusion: always\n---\nA",
				"default.md": "---\ndescription: d\n---\nB",
				"single.md":  "---\ninclusion: fileMatch\nfileMatchPattern: \"*.ts\"\n---\nC",
				"multi.md":   "---\ninclusion: fileMatch\nfileMatchPattern:\n  - \"*.ts\"\n  - \"*.tsx\"\n---\nD",
				"manual.md":  "---\ninclusion: manual\nfileMatchPattern: \"*.md\"\n---\nE",
				"blank.md":   "---\ninclusion: \"\"\n---\nF",
			},
			want: []wantRule{
				{id: "always", alwaysApply: true, globs: []string{}, body: "A"},
				{id: "blank", alwaysApply: true, globs: []string{}, body: "F"},
				{id: "default", description: "d", alwaysApply: true, globs: []string{}, body: "B"},
				{id: "manual", globs: []string{}, body: "E"},
				{id: "multi", globs: []string{"*.ts", "*.tsx"}, body: "D"},
				{id: "single", globs: []string{"*.ts"}, body: "C"},
			},
		},
		"windsurf trigger vocabulary": {
			tool: model.Windsurf,
			files: map[string]string{
				"on.md":      "---\ntrigger: always_on\nglobs: \"*.ts\"\n---\nA",
				"default.md": "B",
				"glob.md":    "---\ntrigger: glob\nglobs: \"*.ts, *.tsx ,\"\n---\nC",
				"list.md":    "---\ntrigger: glob\nglobs:\n  - \"*.go\"\n---\nD",
			},
			want: []wantRule{
				{id: "default", alwaysApply: true, globs: []string{}, body: "B"},
				{id: "glob", globs: []string{"*.ts", "*.tsx"}, body: "C"},
				{id: "list", globs: []string{"*.go"}, body: "D"},
				{id: "on", alwaysApply: true, globs: []string{}, body: "A"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for rel, content := range tt.files {
				util.WriteFile(t, filepath.Join(dir, rel), content)
			}

			result, err := LoadRules(tt.tool, dir)
			if err != nil {
				t.Fatalf("LoadRules() error: %v", err)
			}

			if len(result.Rules) != len(tt.want) {
				t.Fatalf("LoadRules() returned %d rules, want %d: %+v", len(result.Rules), len(tt.want), result.Rules)
			}
			for i, want := range tt.want {
				got := result.Rules[i]
				if got.ID != want.id || got.Title != want.id {
					t.Errorf("rule[%d] id/title = %q/%q, want %q", i, got.ID, got.Title, want.id)
				}
				if got.Description != want.description {
					t.Errorf("rule %s description = %q, want %q", want.id, got.Description, want.description)
				}
				if got.AlwaysApply != want.alwaysApply {
					t.Errorf("rule %s alwaysApply = %v, want %v", want.id, got.AlwaysApply, want.alwaysApply)
				}
				if !reflect.DeepEqual(got.Globs, want.globs) {
					t.Errorf("rule %s globs = %#v, want %#v", want.id, got.Globs, want.globs)
				}
				if got.Body != want.body {
					t.Errorf("rule %s body = %q, want %q", want.id, got.Body, want.body)
				}
				if got.Source != tt.tool {
					t.Errorf("rule %s source = %q, want %q", want.id, got.Source, tt.tool)
				}
				if got.Meta == nil {
					t.Errorf("rule %s meta is nil", want.id)
				}
			}
		})
	}
}

func TestLoadRules_MissingDirectory(t *testing.T) {
	for _, tool := range model.AllTools() {
		t.Run(string(tool), func(t *testing.T) {
			_, err := LoadRules(tool, filepath.Join(t.TempDir(), "missing"))
			if !errors.Is(err, ErrSourceNotFound) {
				t.Fatalf("LoadRules() error = %v, want ErrSourceNotFound", err)
			}
		})
	}
}

func TestLoadRules_UnknownTool(t *testing.T) {
	_, err := LoadRules("emacs", t.TempDir())
	if !errors.Is(err, model.ErrUnknownTool) {
		t.Fatalf("LoadRules() error = %v, want ErrUnknownTool", err)
	}
}

func TestLoadRules_EmptyDirectory(t *testing.T) {
	result, err := LoadRules(model.Claude, t.TempDir())
	if err != nil {
		t.Fatalf("LoadRules() error: %v", err)
	}
	if len(result.Rules) != 0 || len(result.Warnings) != 0 {
		t.Errorf("LoadRules() on empty dir = %+v, want nothing", result)
	}
}

func TestLoadRules_MalformedFrontmatter(t *testing.T) {
	dir := t.TempDir()
	broken := "---\nalwaysApply: [oops\n---\nKeep this text.\n"
	util.WriteFile(t, filepath.Join(dir, "broken", "RULE.md"), broken)
	util.WriteFile(t, filepath.Join(dir, "fine", "RULE.md"), "---\nalwaysApply: true\n---\nFine.")

	result, err := LoadRules(model.Cursor, dir)
	if err != nil {
		t.Fatalf("LoadRules() error: %v", err)
	}
	if len(result.Rules) != 2 {
		t.Fatalf("LoadRules() returned %d rules, want 2", len(result.Rules))
	}

	got := result.Rules[0]
	if got.ID != "broken" {
		t.Fatalf("first rule = %q, want broken", got.ID)
	}
	if len(got.Meta) != 0 {
		t.Errorf("broken rule meta = %v, want empty", got.Meta)
	}
	if !strings.Contains(got.Body, "alwaysApply: [oops") || !strings.Contains(got.Body, "Keep this text.") {
		t.Errorf("broken rule body lost content: %q", got.Body)
	}
	if !result.Rules[1].AlwaysApply {
		t.Error("rule after a broken file was not loaded normally")
	}

	joined := strings.Join(result.Warnings, "\n")
	if !strings.Contains(joined, "invalid frontmatter") {
		t.Errorf("expected frontmatter warning, got %v", result.Warnings)
	}
}

func TestLoadRules_ConditionalWithoutGlobsWarns(t *testing.T) {
	dir := t.TempDir()
	util.WriteFile(t, filepath.Join(dir, "plain", "RULE.md"), "# Plain markdown\n\nNo metadata.\n")

	result, err := LoadRules(model.Cursor, dir)
	if err != nil {
		t.Fatalf("LoadRules() error: %v", err)
	}
	rule := result.Rules[0]
	if rule.AlwaysApply || len(rule.Globs) != 0 {
		t.Errorf("plain cursor rule scope = %v %v, want conditional with no globs", rule.AlwaysApply, rule.Globs)
	}
	if rule.Body != "# Plain markdown\n\nNo metadata." {
		t.Errorf("plain cursor rule body = %q", rule.Body)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "no glob patterns") {
		t.Errorf("warnings = %v, want one about missing glob patterns", result.Warnings)
	}
}

func TestLoadRules_Deterministic(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []string{"zeta", "alpha", "mid", "Beta"} {
		util.WriteFile(t, filepath.Join(dir, id+".md"), "---\nalways_apply: true\n---\n"+id)
	}

	first, err := LoadRules(model.Claude, dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := LoadRules(model.Claude, dir)
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, r := range first.Rules {
		ids = append(ids, r.ID)
	}
	if want := []string{"Beta", "alpha", "mid", "zeta"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("load order = %v, want %v", ids, want)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two loads of the same directory differ")
	}
}

func TestRegistry(t *testing.T) {
	for _, tool := range model.AllTools() {
		s, err := Get(tool)
		if err != nil {
			t.Fatalf("Get(%s) error: %v", tool, err)
		}
		if s.Tool() != tool {
			t.Errorf("Get(%s).Tool() = %s", tool, s.Tool())
		}
	}
}
