// Package detector reports which tool conventions are present under a
// project root.
package detector

import (
	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/source"
)

// FileSystem is the subset of file operations detection needs.
type FileSystem interface {
	source.FileSystem
	Exists(path string) bool
}

// Detected describes one tool's footprint in a project.
type Detected struct {
	Tool     model.Tool
	RulesDir string
	// Present is true when RulesDir exists.
	Present bool
	// Rules is the number of rules the tool's loader finds.
	Rules int
	// Warnings are load diagnostics, for example malformed frontmatter.
	Warnings []string
	// ConsolidatedFile is empty for tools without an aggregate document.
	ConsolidatedFile    string
	ConsolidatedPresent bool
}

// DetectAll inspects every tool in model.AllTools order.
func DetectAll(fsys FileSystem, paths model.PathConfig) []Detected {
	tools := model.AllTools()
	out := make([]Detected, 0, len(tools))
	for _, t := range tools {
		out = append(out, Detect(fsys, paths, t))
	}
	return out
}

// Detect inspects one tool.
func Detect(fsys FileSystem, paths model.PathConfig, tool model.Tool) Detected {
	d := Detected{Tool: tool, RulesDir: paths.RulesDir(tool)}
	if file, ok := paths.ConsolidatedFile(tool); ok {
		d.ConsolidatedFile = file
		d.ConsolidatedPresent = fsys.Exists(file)
	}

	if d.RulesDir == "" || !fsys.IsDir(d.RulesDir) {
		return d
	}
	d.Present = true

	loaded, err := source.LoadRulesFS(fsys, tool, d.RulesDir)
	if err != nil {
		d.Warnings = []string{err.Error()}
		return d
	}
	d.Rules = len(loaded.Rules)
	d.Warnings = loaded.Warnings
	return d
}

// SuggestSource returns the present tool with the most rules, preferring
// earlier tools on ties. ok is false when no tool has rules.
func SuggestSource(detected []Detected) (tool model.Tool, ok bool) {
	best := 0
	for _, d := range detected {
		if d.Rules > best {
			best = d.Rules
			tool = d.Tool
			ok = true
		}
	}
	return tool, ok
}
