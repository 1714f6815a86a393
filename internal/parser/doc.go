// Package parser extracts the frontmatter block and body from rule documents.
//
// It has no knowledge of any tool's field names: callers receive the raw
// metadata mapping and use the coercion helpers in this package to read the
// keys they care about.
package parser
