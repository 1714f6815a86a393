// Package scaffold creates example rules in any tool's convention.
package scaffold

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/target"
)

// FileSystem is the subset of file operations Init needs.
type FileSystem interface {
	Exists(path string) bool
	WriteFile(path, content string) error
}

// TemplateData is passed to every example body.
type TemplateData struct {
	Tool     string // display name, e.g. "GitHub Copilot"
	ToolName string // flag value, e.g. "copilot"
	RulesDir string // relative to the project root
}

type example struct {
	id          string
	description string
	globs       []string
	body        string
}

var examples = []example{
	{
		id:          "general-standards",
		description: "General coding standards that apply to all files",
		body:        generalTemplate,
	},
	{
		id:          "go-standards",
		description: "Go coding standards",
		globs:       []string{"**/*.go"},
		body:        goTemplate,
	},
	{
		id:          "typescript-standards",
		description: "TypeScript and React coding standards",
		globs:       []string{"**/*.ts", "**/*.tsx"},
		body:        typescriptTemplate,
	},
}

// Generator renders the built-in example rules.
type Generator struct {
	templates map[string]*template.Template
}

// New parses the built-in templates.
func New() (*Generator, error) {
	g := &Generator{templates: make(map[string]*template.Template, len(examples))}
	for _, ex := range examples {
		tmpl, err := template.New(ex.id).Parse(ex.body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", ex.id, err)
		}
		g.templates[ex.id] = tmpl
	}
	return g, nil
}

// Rules returns the examples as rules owned by tool.
func (g *Generator) Rules(tool model.Tool, paths model.PathConfig) ([]model.Rule, error) {
	data := TemplateData{
		Tool:     tool.DisplayName(),
		ToolName: tool.String(),
		RulesDir: filepath.ToSlash(paths.Rel(paths.RulesDir(tool))),
	}

	rules := make([]model.Rule, 0, len(examples))
	for _, ex := range examples {
		var buf bytes.Buffer
		if err := g.templates[ex.id].Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("failed to execute %s template: %w", ex.id, err)
		}
		globs := append([]string{}, ex.globs...)
		rules = append(rules, model.Rule{
			ID:          ex.id,
			Title:       ex.id,
			Description: ex.description,
			Body:        strings.TrimSpace(buf.String()),
			AlwaysApply: len(globs) == 0,
			Globs:       globs,
			Source:      tool,
		})
	}
	return rules, nil
}

// Result lists what Init did, by rule id.
type Result struct {
	Tool    model.Tool
	Created []string
	Skipped []string
	// Files are the paths written, in order.
	Files []string
}

// Init writes the example rules into tool's rule directory using tool's own
// target adapter. A rule whose file already exists is skipped, never
// overwritten. Aggregate files such as CLAUDE.md are not created.
func (g *Generator) Init(fsys FileSystem, tool model.Tool, paths model.PathConfig) (*Result, error) {
	t, err := target.Get(tool)
	if err != nil {
		return nil, err
	}
	rules, err := g.Rules(tool, paths)
	if err != nil {
		return nil, err
	}

	res := &Result{Tool: tool}
	dir := paths.RulesDir(tool)
	for _, r := range rules {
		rendered, err := target.SafeRender(t, []model.Rule{r}, paths)
		if err != nil {
			return res, err
		}
		w, ok := ruleFile(rendered.Writes, dir)
		if !ok {
			return res, fmt.Errorf("%s rendered no rule file for %q", tool.DisplayName(), r.ID)
		}
		if fsys.Exists(w.Path) || fsys.Exists(filepath.Join(dir, r.ID)) {
			res.Skipped = append(res.Skipped, r.ID)
			continue
		}
		if err := fsys.WriteFile(w.Path, w.Content); err != nil {
			return res, fmt.Errorf("create %s: %w", r.ID, err)
		}
		res.Created = append(res.Created, r.ID)
		res.Files = append(res.Files, w.Path)
	}
	return res, nil
}

// ruleFile picks the write that lands inside dir, skipping aggregate files.
func ruleFile(writes []model.PlannedWrite, dir string) (model.PlannedWrite, bool) {
	for _, w := range writes {
		if strings.HasPrefix(w.Path, dir+string(filepath.Separator)) {
			return w, true
		}
	}
	return model.PlannedWrite{}, false
}
