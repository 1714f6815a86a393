package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTool is returned when a tool name is not one of the supported conventions.
var ErrUnknownTool = errors.New("unknown tool")

// Tool identifies one of the supported AI assistant rule conventions.
type Tool string

const (
	Cursor      Tool = "cursor"
	Claude      Tool = "claude"
	Copilot     Tool = "copilot"
	Antigravity Tool = "antigravity"
	Kiro        Tool = "kiro"
	Windsurf    Tool = "windsurf"
)

// IsValid returns true if the tool is recognized
func (t Tool) IsValid() bool {
	switch t {
	case Cursor, Claude, Copilot, Antigravity, Kiro, Windsurf:
		return true
	default:
		return false
	}
}

// DisplayName returns the product name used in console output.
func (t Tool) DisplayName() string {
	switch t {
	case Cursor:
		return "Cursor"
	case Claude:
		return "Claude Code"
	case Copilot:
		return "GitHub Copilot"
	case Antigravity:
		return "Antigravity"
	case Kiro:
		return "Kiro"
	case Windsurf:
		return "Windsurf"
	default:
		return string(t)
	}
}

func (t Tool) String() string {
	return string(t)
}

// AllTools returns every supported convention in source order.
func AllTools() []Tool {
	return []Tool{Cursor, Claude, Copilot, Antigravity, Kiro, Windsurf}
}

// DefaultTargets returns the targets rendered when none are requested.
// Tools with a consolidated file come first.
func DefaultTargets() []Tool {
	return []Tool{Copilot, Claude, Antigravity, Cursor, Kiro, Windsurf}
}

// ToolNames returns the names of all tools, for help text and validation.
func ToolNames() []string {
	tools := AllTools()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = string(t)
	}
	return names
}

// ParseTool converts a user supplied name into a Tool.
// Matching is case-insensitive and surrounding whitespace is ignored.
func ParseTool(s string) (Tool, error) {
	t := Tool(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownTool, s, strings.Join(ToolNames(), ", "))
	}
	return t, nil
}

// ParseTools parses a list of tool names, dropping duplicates while keeping order.
func ParseTools(names []string) ([]Tool, error) {
	tools := make([]Tool, 0, len(names))
	seen := make(map[Tool]bool, len(names))
	for _, n := range names {
		t, err := ParseTool(n)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		tools = append(tools, t)
	}
	return tools, nil
}
