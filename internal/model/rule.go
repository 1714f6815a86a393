// Package model defines the canonical rule representation shared by every
// source and target convention.
package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Rule is the tool-neutral form of one rule file.
//
// AlwaysApply and Globs are the only scoping fields targets may consult.
// Meta holds the raw frontmatter of the source file and is never used to
// derive another tool's scoping.
type Rule struct {
	// ID is derived from the file or directory name with tool suffixes removed.
	ID string `json:"id" yaml:"id"`
	// Title currently always equals ID.
	Title string `json:"title" yaml:"title"`
	// Description is empty when the source omits it.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Body is the markdown after the frontmatter, trimmed.
	Body string `json:"body" yaml:"body"`
	// AlwaysApply means the rule applies to every file.
	AlwaysApply bool `json:"alwaysApply" yaml:"alwaysApply"`
	// Globs scope the rule when AlwaysApply is false.
	Globs []string `json:"globs" yaml:"globs"`
	// Meta is the full frontmatter mapping as parsed.
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
	// Source names the convention the rule was loaded from.
	Source Tool `json:"source" yaml:"source"`
}

// ErrNoGlobs marks a conditional rule that has no patterns to match.
var ErrNoGlobs = errors.New("rule is conditional but has no glob patterns")

// Conditional reports whether the rule is scoped to file patterns.
func (r Rule) Conditional() bool {
	return !r.AlwaysApply
}

// Validate checks structural invariants of a loaded rule.
func (r Rule) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Source, validation.Required, validation.In(toolValues()...)),
		validation.Field(&r.Globs,
			validation.When(r.Conditional(), validation.Required.ErrorObject(
				validation.NewError("validation_no_globs", ErrNoGlobs.Error()))),
			validation.Each(validation.Required),
		),
	)
}

func toolValues() []any {
	tools := AllTools()
	values := make([]any, len(tools))
	for i, t := range tools {
		values[i] = t
	}
	return values
}
