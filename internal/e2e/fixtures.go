package e2e

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lewiesnyder/RulePort/internal/model"
)

// Fixture provides helpers for creating test fixtures in E2E tests.
type Fixture struct {
	t       *testing.T
	baseDir string
}

// NewFixture creates a new fixture helper rooted at the given directory.
func NewFixture(t *testing.T, baseDir string) *Fixture {
	t.Helper()
	return &Fixture{
		t:       t,
		baseDir: baseDir,
	}
}

// WriteFile writes content to a file relative to the fixture base directory.
// It creates parent directories as needed.
func (f *Fixture) WriteFile(relPath, content string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}

	return fullPath
}

// WriteCursorRule writes .cursor/rules/<id>/RULE.md. No globs makes the rule
// always-on.
func (f *Fixture) WriteCursorRule(id, description, body string, globs ...string) string {
	f.t.Helper()

	var sb strings.Builder
	sb.WriteString("---\n")
	if description != "" {
		sb.WriteString("description: " + description + "\n")
	}
	if len(globs) > 0 {
		sb.WriteString("globs:\n")
		for _, g := range globs {
			sb.WriteString("  - \"" + g + "\"\n")
		}
		sb.WriteString("alwaysApply: false\n")
	} else {
		sb.WriteString("alwaysApply: true\n")
	}
	sb.WriteString("---\n")
	sb.WriteString(body)

	return f.WriteFile(filepath.Join(model.DefaultRulesDirs[model.Cursor], id, "RULE.md"), sb.String())
}

// RulesPath returns the path of a file inside tool's default rule directory.
func (f *Fixture) RulesPath(tool model.Tool, name string) string {
	return filepath.Join(f.baseDir, model.DefaultRulesDirs[tool], name)
}

// ConsolidatedPath returns tool's default consolidated file.
func (f *Fixture) ConsolidatedPath(tool model.Tool) string {
	return filepath.Join(f.baseDir, model.DefaultConsolidatedFiles[tool])
}

// MkdirAll creates a directory and all parent directories relative to the base.
func (f *Fixture) MkdirAll(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	if err := os.MkdirAll(fullPath, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// Path returns the full path for a relative path.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.baseDir, relPath)
}

// Exists returns true if the file or directory exists.
func (f *Fixture) Exists(relPath string) bool {
	f.t.Helper()
	_, err := os.Stat(filepath.Join(f.baseDir, relPath))
	return err == nil
}

// ReadFile reads and returns the content of a file.
func (f *Fixture) ReadFile(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	// #nosec G304 - fullPath is built from the fixture base and a test-provided path
	data, err := os.ReadFile(fullPath)
	if err != nil {
		f.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}

	return string(data)
}
