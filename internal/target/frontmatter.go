package target

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontmatter builds a YAML mapping with a fixed key order. Free text is
// double quoted, enum words and booleans are plain.
type frontmatter struct {
	root yaml.Node
}

func newFrontmatter() *frontmatter {
	return &frontmatter{root: yaml.Node{Kind: yaml.MappingNode}}
}

func (f *frontmatter) add(key string, value *yaml.Node) {
	f.root.Content = append(f.root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func (f *frontmatter) quoted(key, value string) {
	f.add(key, quotedNode(value))
}

func (f *frontmatter) word(key, value string) {
	f.add(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func (f *frontmatter) boolean(key string, value bool) {
	v := "false"
	if value {
		v = "true"
	}
	f.add(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v})
}

func (f *frontmatter) list(key string, values []string) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, quotedNode(v))
	}
	f.add(key, seq)
}

func quotedNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: value}
}

// render returns the block including both delimiter lines.
func (f *frontmatter) render() (string, error) {
	if len(f.root.Content) == 0 {
		return "---\n---\n", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&f.root); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	return "---\n" + buf.String() + "---\n", nil
}
