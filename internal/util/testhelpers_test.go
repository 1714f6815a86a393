//nolint:revive // var-naming - package name is meaningful
package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules", "general", "RULE.md")

	WriteFile(t, path, "Write clear code.\n")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(data) != "Write clear code.\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteTree(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		".kiro/steering/api.md":    "api",
		".windsurf/rules/style.md": "style",
	}

	WriteTree(t, root, files)

	for name, want := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}
}
