package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// FrontmatterResult contains the raw frontmatter and remaining content.
type FrontmatterResult struct {
	// Frontmatter holds the bytes between the delimiters with LF line endings.
	Frontmatter []byte
	// Content is everything after the closing delimiter line.
	Content string
	// HasFrontmatter indicates whether a complete delimited block was found.
	HasFrontmatter bool
}

// SplitFrontmatter separates a leading "---" block from the rest of content.
// The block opens on the first line and closes on the next line that is
// exactly "---" (LF or CRLF terminated, or at end of input). Without a
// closing line the whole input is content.
func SplitFrontmatter(content []byte) FrontmatterResult {
	rest, ok := cutOpening(content)
	if !ok {
		return FrontmatterResult{Content: string(content)}
	}

	offset := 0
	for {
		end := bytes.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		next := len(rest)
		if end != -1 {
			line = rest[offset : offset+end]
			next = offset + end + 1
		}

		if string(bytes.TrimSuffix(line, []byte("\r"))) == delimiter {
			fm := bytes.ReplaceAll(rest[:offset], []byte("\r\n"), []byte("\n"))
			fm = bytes.TrimSuffix(fm, []byte("\n"))
			return FrontmatterResult{
				Frontmatter:    fm,
				Content:        string(rest[next:]),
				HasFrontmatter: true,
			}
		}

		if end == -1 {
			return FrontmatterResult{Content: string(content)}
		}
		offset = next
	}
}

func cutOpening(content []byte) ([]byte, bool) {
	if rest, ok := bytes.CutPrefix(content, []byte(delimiter+"\n")); ok {
		return rest, true
	}
	if rest, ok := bytes.CutPrefix(content, []byte(delimiter+"\r\n")); ok {
		return rest, true
	}
	return nil, false
}

// Document is a parsed rule file.
type Document struct {
	Meta map[string]any
	Body string
}

// FrontmatterError reports a frontmatter block that could not be decoded.
type FrontmatterError struct {
	Err error
}

func (e *FrontmatterError) Error() string {
	return fmt.Sprintf("invalid frontmatter: %v", e.Err)
}

func (e *FrontmatterError) Unwrap() error {
	return e.Err
}

// Parse splits content into metadata and body.
//
// Content without a complete block yields empty metadata and the full input
// as body. A block that fails to decode yields the same fallback document
// together with a *FrontmatterError, so the caller keeps the text and can
// report the problem. On success the body is trimmed.
func Parse(content []byte) (Document, error) {
	fallback := Document{Meta: map[string]any{}, Body: string(content)}

	split := SplitFrontmatter(content)
	if !split.HasFrontmatter {
		return fallback, nil
	}

	meta, err := ParseYAMLFrontmatter(split.Frontmatter)
	if err != nil {
		return fallback, &FrontmatterError{Err: err}
	}

	return Document{
		Meta: meta,
		Body: NormalizeContent(split.Content),
	}, nil
}

// ParseYAMLFrontmatter decodes a frontmatter block into a mapping.
// An empty or null block produces an empty mapping.
func ParseYAMLFrontmatter(frontmatter []byte) (map[string]any, error) {
	result := make(map[string]any)
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return result, nil
	}

	if err := yaml.Unmarshal(frontmatter, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]any)
	}
	for k, v := range result {
		result[k] = stringKeys(v)
	}

	return result, nil
}

// stringKeys rewrites nested mappings so every key is a string. yaml.v3
// decodes a mapping with any non-string key as map[any]any.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// NormalizeContent trims surrounding whitespace and converts CRLF to LF.
func NormalizeContent(content string) string {
	return strings.ReplaceAll(strings.TrimSpace(content), "\r\n", "\n")
}
