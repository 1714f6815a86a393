package parser

import (
	"fmt"
	"strings"
)

// String returns meta[key] when it is a string.
func String(meta map[string]any, key string) (string, bool) {
	s, ok := meta[key].(string)
	return s, ok
}

// IsTrue reports whether meta[key] is the boolean true. Strings such as
// "true" do not count.
func IsTrue(meta map[string]any, key string) bool {
	b, ok := meta[key].(bool)
	return ok && b
}

// Truthy reports whether meta[key] is present with a non-empty value.
func Truthy(meta map[string]any, key string) bool {
	switch v := meta[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// StringList returns meta[key] as strings when it is a sequence.
// Scalars inside the sequence are formatted, null entries are skipped.
func StringList(meta map[string]any, key string) []string {
	items, ok := meta[key].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// StringOrList accepts either a single string or a sequence.
func StringOrList(meta map[string]any, key string) []string {
	if s, ok := String(meta, key); ok {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	return StringList(meta, key)
}

// CommaList accepts a comma separated string or a sequence. String parts are
// trimmed and empty parts dropped. Commas inside braces belong to a glob
// alternation such as "*.{ts,tsx}" and do not split.
func CommaList(meta map[string]any, key string) []string {
	s, ok := String(meta, key)
	if !ok {
		return StringList(meta, key)
	}

	var out []string
	for _, part := range splitTopLevel(s) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
