// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It runs ruleport commands in-process against an isolated project root
// and captures their output.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/lewiesnyder/RulePort/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the inferred exit code (0 for success, 1 for error).
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness runs CLI commands against one temporary project.
type Harness struct {
	t       *testing.T
	homeDir string
	root    string
}

// NewHarness creates an isolated HOME and project root. RULEPORT_ROOT
// points at the project so commands need no path argument.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	h := &Harness{
		t:       t,
		homeDir: t.TempDir(),
		root:    t.TempDir(),
	}

	t.Setenv("HOME", h.homeDir)
	t.Setenv("NO_COLOR", "1")
	t.Setenv("RULEPORT_ROOT", h.root)
	for _, k := range []string{"RULEPORT_SOURCE", "RULEPORT_TARGETS", "RULEPORT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return h
}

// SetEnv sets an environment variable for commands run through this
// harness. It is restored when the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.t.Setenv(key, value)
}

// HomeDir returns the isolated home directory.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// Root returns the project root.
func (h *Harness) Root() string {
	return h.root
}

// Project returns a fixture rooted at the project.
func (h *Harness) Project() *Fixture {
	return NewFixture(h.t, h.root)
}

// Run executes a CLI command with the given arguments and captures stdout.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	if len(args) == 0 || args[0] != "ruleport" {
		args = append([]string{"ruleport"}, args...)
	}

	oldStdout := os.Stdout
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = stdoutW

	// Drain concurrently so large output cannot fill the pipe buffer.
	var stdoutBuf bytes.Buffer
	var copyErr error
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, copyErr = io.Copy(&stdoutBuf, stdoutR)
	}()

	cmdErr := cli.Run(context.Background(), args)

	if err := stdoutW.Close(); err != nil {
		h.t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	os.Stdout = oldStdout

	<-copyDone
	if copyErr != nil {
		h.t.Fatalf("failed to read captured stdout: %v", copyErr)
	}

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdoutBuf.String(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}
