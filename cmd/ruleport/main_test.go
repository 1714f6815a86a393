package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/lewiesnyder/RulePort/internal/cli"
)

func capture(t *testing.T, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	runErr := cli.Run(context.Background(), args)

	if closeErr := w.Close(); closeErr != nil {
		t.Fatalf("failed to close pipe writer: %v", closeErr)
	}
	os.Stdout = old

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("failed to read captured output: %v", copyErr)
	}
	return buf.String(), runErr
}

func TestCLIInitialization(t *testing.T) {
	output, err := capture(t, "ruleport", "--help")
	if err != nil {
		t.Fatalf("CLI initialization failed: %v", err)
	}

	for _, want := range []string{"ruleport", "USAGE", "COMMANDS", "sync", "check", "watch", "status", "init", "mcp"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected help output to contain %q, got: %q", want, output)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	output, err := capture(t, "ruleport", "--version")
	if err != nil {
		t.Fatalf("--version flag failed: %v", err)
	}
	if !strings.Contains(output, "ruleport") {
		t.Errorf("expected version output to contain 'ruleport', got: %q", output)
	}
}
