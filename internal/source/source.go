// Package source loads rule files written in one tool's convention and
// converts them to model.Rule.
package source

import (
	"errors"
	"fmt"

	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/storage"
)

// ErrSourceNotFound is returned when the source rule directory does not exist.
var ErrSourceNotFound = errors.New("source directory not found")

// FileSystem is the subset of file operations a loader needs.
type FileSystem interface {
	IsDir(path string) bool
	Subdirs(dir string) ([]string, error)
	Files(dir string) ([]string, error)
	ReadFile(path string) (content string, found bool, err error)
}

// LoadResult holds the rules read from one directory plus any per-file
// diagnostics. A diagnostic never prevents the remaining files from loading.
type LoadResult struct {
	Rules    []model.Rule
	Warnings []string
}

// Source reads one tool's rule directory.
type Source interface {
	Tool() model.Tool
	Load(fsys FileSystem, dir string) (*LoadResult, error)
}

var registry = map[model.Tool]Source{
	model.Cursor: &loader{
		tool:     model.Cursor,
		fileName: "RULE.md",
		scope:    cursorScope,
	},
	model.Claude: &loader{
		tool:   model.Claude,
		suffix: ".md",
		scope:  claudeScope,
	},
	model.Copilot: &loader{
		tool:   model.Copilot,
		suffix: ".instructions.md",
		scope:  copilotScope,
	},
	model.Antigravity: &loader{
		tool:   model.Antigravity,
		suffix: ".md",
		scope:  antigravityScope,
	},
	model.Kiro: &loader{
		tool:   model.Kiro,
		suffix: ".md",
		scope:  kiroScope,
	},
	model.Windsurf: &loader{
		tool:   model.Windsurf,
		suffix: ".md",
		scope:  windsurfScope,
	},
}

// Get returns the loader registered for tool.
func Get(tool model.Tool) (Source, error) {
	s, ok := registry[tool]
	if !ok {
		return nil, fmt.Errorf("%w %q", model.ErrUnknownTool, tool)
	}
	return s, nil
}

// LoadRules reads rules for tool from dir on the local file system.
func LoadRules(tool model.Tool, dir string) (*LoadResult, error) {
	return LoadRulesFS(storage.New(), tool, dir)
}

// LoadRulesFS reads rules for tool from dir using fsys.
func LoadRulesFS(fsys FileSystem, tool model.Tool, dir string) (*LoadResult, error) {
	s, err := Get(tool)
	if err != nil {
		return nil, err
	}
	return s.Load(fsys, dir)
}
