package source

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/parser"
)

// scopeFunc maps a tool's frontmatter onto AlwaysApply and Globs.
type scopeFunc func(meta map[string]any) (alwaysApply bool, globs []string)

// loader handles both layouts. With fileName set, every subdirectory holding
// that file is a rule named after the directory. Otherwise every file ending
// in suffix is a rule named after the file without the suffix.
type loader struct {
	tool     model.Tool
	fileName string
	suffix   string
	scope    scopeFunc
}

type candidate struct {
	id   string
	path string
}

func (l *loader) Tool() model.Tool {
	return l.tool
}

func (l *loader) Load(fsys FileSystem, dir string) (*LoadResult, error) {
	if !fsys.IsDir(dir) {
		return nil, fmt.Errorf("%s %w: %s", l.tool.DisplayName(), ErrSourceNotFound, dir)
	}

	candidates, err := l.candidates(fsys, dir)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Rules: make([]model.Rule, 0, len(candidates))}
	for _, c := range candidates {
		raw, found, err := fsys.ReadFile(c.path)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		rule, warnings := l.convert(c, raw)
		result.Rules = append(result.Rules, rule)
		result.Warnings = append(result.Warnings, warnings...)
	}

	return result, nil
}

func (l *loader) candidates(fsys FileSystem, dir string) ([]candidate, error) {
	if l.fileName != "" {
		dirs, err := fsys.Subdirs(dir)
		if err != nil {
			return nil, err
		}
		sort.Strings(dirs)

		out := make([]candidate, 0, len(dirs))
		for _, d := range dirs {
			out = append(out, candidate{id: d, path: filepath.Join(dir, d, l.fileName)})
		}
		return out, nil
	}

	files, err := fsys.Files(dir)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var out []candidate
	for _, f := range files {
		id, ok := strings.CutSuffix(f, l.suffix)
		if !ok || id == "" {
			continue
		}
		out = append(out, candidate{id: id, path: filepath.Join(dir, f)})
	}
	return out, nil
}

func (l *loader) convert(c candidate, raw string) (model.Rule, []string) {
	var warnings []string

	doc, err := parser.Parse([]byte(raw))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s: %v (loaded without metadata)", c.path, err))
	}

	alwaysApply, globs := l.scope(doc.Meta)
	if globs == nil {
		globs = []string{}
	}
	description, _ := parser.String(doc.Meta, "description")

	rule := model.Rule{
		ID:          c.id,
		Title:       c.id,
		Description: description,
		Body:        parser.NormalizeContent(doc.Body),
		AlwaysApply: alwaysApply,
		Globs:       globs,
		Meta:        doc.Meta,
		Source:      l.tool,
	}

	if err := rule.Validate(); err != nil {
		warnings = append(warnings, fmt.Sprintf("rule %q: %v", rule.ID, err))
	}

	return rule, warnings
}
