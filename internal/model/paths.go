package model

import "path/filepath"

// DefaultRulesDirs maps each tool to its rule directory relative to a
// project root. Sources read from and targets write to the same directory.
var DefaultRulesDirs = map[Tool]string{
	Cursor:      filepath.Join(".cursor", "rules"),
	Claude:      filepath.Join(".claude", "rules"),
	Copilot:     filepath.Join(".github", "instructions"),
	Antigravity: filepath.Join(".agent", "rules"),
	Kiro:        filepath.Join(".kiro", "steering"),
	Windsurf:    filepath.Join(".windsurf", "rules"),
}

// DefaultConsolidatedFiles maps the tools that also read one aggregate
// document to that document's path relative to a project root.
var DefaultConsolidatedFiles = map[Tool]string{
	Copilot:     filepath.Join(".github", "copilot-instructions.md"),
	Claude:      filepath.Join(".claude", "CLAUDE.md"),
	Antigravity: filepath.Join(".gemini", "GEMINI.md"),
}

// PathConfig holds absolute locations for every tool under one project root.
type PathConfig struct {
	Root         string
	Rules        map[Tool]string
	Consolidated map[Tool]string
}

// DefaultPaths resolves the default layout under root.
func DefaultPaths(root string) PathConfig {
	p := PathConfig{
		Root:         root,
		Rules:        make(map[Tool]string, len(DefaultRulesDirs)),
		Consolidated: make(map[Tool]string, len(DefaultConsolidatedFiles)),
	}
	for t, rel := range DefaultRulesDirs {
		p.Rules[t] = filepath.Join(root, rel)
	}
	for t, rel := range DefaultConsolidatedFiles {
		p.Consolidated[t] = filepath.Join(root, rel)
	}
	return p
}

// RulesDir returns the rule directory for t.
func (p PathConfig) RulesDir(t Tool) string {
	return p.Rules[t]
}

// ConsolidatedFile returns the aggregate document path for t, if t has one.
func (p PathConfig) ConsolidatedFile(t Tool) (string, bool) {
	path, ok := p.Consolidated[t]
	return path, ok && path != ""
}

// Rel returns path relative to the project root for display, falling back
// to path itself.
func (p PathConfig) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return rel
}
