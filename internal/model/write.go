package model

// PlannedWrite is a file a target wants on disk. Content is the exact bytes.
type PlannedWrite struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RenderResult is the output of rendering rules for one target.
type RenderResult struct {
	Writes   []PlannedWrite `json:"writes"`
	Warnings []string       `json:"warnings,omitempty"`
}
