package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/source"
	"github.com/lewiesnyder/RulePort/internal/sync"
	"github.com/lewiesnyder/RulePort/internal/util"
)

const noConsoleRule = `---
description: "Disallow console.log"
globs:
  - "*.ts"
alwaysApply: false
---
# No console.log
Use a logger instead.
`

const generalRule = `---
description: General standards
alwaysApply: true
---
Write clear code.
`

func cursorProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	util.WriteTree(t, root, map[string]string{
		".cursor/rules/no-console/RULE.md": noConsoleRule,
		".cursor/rules/general/RULE.md":    generalRule,
	})
	return root
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestSplitArgs(t *testing.T) {
	tests := map[string]struct {
		args      []string
		wantPath  string
		wantTools []string
		wantErr   bool
	}{
		"empty":              {},
		"path only":          {args: []string{"./project"}, wantPath: "./project"},
		"tools only":         {args: []string{"kiro", "Windsurf"}, wantTools: []string{"kiro", "Windsurf"}},
		"path and tools":     {args: []string{"copilot", "./project", "claude"}, wantPath: "./project", wantTools: []string{"copilot", "claude"}},
		"two paths rejected": {args: []string{"./a", "./b"}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path, tools, err := splitArgs(logging.Default(), tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), "multiple paths provided") {
					t.Errorf("unexpected error text: %v", err)
				}
				return
			}
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
			if !reflect.DeepEqual(tools, tt.wantTools) {
				t.Errorf("tools = %v, want %v", tools, tt.wantTools)
			}
		})
	}
}

func TestSyncCommand(t *testing.T) {
	root := cursorProject(t)

	output, err := runCLI(t, "sync", root)
	if err != nil {
		t.Fatalf("sync failed: %v\n%s", err, output)
	}

	for _, want := range []string{
		"Syncing AI rules (Source: Cursor)",
		"Found 2 rule(s):",
		"no-console (1 pattern(s))",
		"general (0 pattern(s)) [always]",
		"Syncing to GitHub Copilot...",
		"Created 2 instruction file(s) in .github/instructions/",
		"Created consolidated .github/copilot-instructions.md",
		"Created 2 steering file(s) in .kiro/steering/",
		"Sync complete: 6 succeeded, 0 failed",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	for _, rel := range []string{
		".github/instructions/no-console.instructions.md",
		".github/copilot-instructions.md",
		".claude/rules/general.md",
		".claude/CLAUDE.md",
		".agent/rules/general.md",
		".gemini/GEMINI.md",
		".kiro/steering/no-console.md",
		".windsurf/rules/no-console.md",
	} {
		if !exists(filepath.Join(root, filepath.FromSlash(rel))) {
			t.Errorf("expected %s to be written", rel)
		}
	}
}

func TestDefaultActionSyncs(t *testing.T) {
	root := cursorProject(t)

	output, err := runCLI(t, root, "windsurf")
	if err != nil {
		t.Fatalf("default action failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Sync complete: 1 succeeded, 0 failed") {
		t.Errorf("expected a single target run:\n%s", output)
	}
	if !exists(filepath.Join(root, ".windsurf", "rules", "general.md")) {
		t.Error("windsurf rule not written")
	}
	if exists(filepath.Join(root, ".kiro")) {
		t.Error("kiro should not be written when only windsurf is requested")
	}
}

func TestSyncCommand_SourceFlag(t *testing.T) {
	root := t.TempDir()
	util.WriteFile(t, filepath.Join(root, ".windsurf", "rules", "tests.md"), "---\ntrigger: glob\nglobs: \"*_test.go\"\n---\nUse table tests.\n")

	output, err := runCLI(t, "--source", "windsurf", "--target", "kiro", "sync", root)
	if err != nil {
		t.Fatalf("sync failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Source: Windsurf") {
		t.Errorf("expected windsurf source in output:\n%s", output)
	}
	data, err := os.ReadFile(filepath.Join(root, ".kiro", "steering", "tests.md"))
	if err != nil {
		t.Fatalf("kiro file not written: %v", err)
	}
	if !strings.Contains(string(data), "fileMatchPattern") {
		t.Errorf("kiro file should be scoped:\n%s", data)
	}
}

func TestSyncCommand_Errors(t *testing.T) {
	tests := map[string]struct {
		args    func(root string) []string
		wantIs  error
		wantMsg string
	}{
		"missing source directory": {
			args:   func(root string) []string { return []string{"--source", "kiro", "sync", root} },
			wantIs: source.ErrSourceNotFound,
		},
		"unknown source": {
			args:    func(root string) []string { return []string{"--source", "vim", "sync", root} },
			wantMsg: "source",
		},
		"unknown target": {
			args:    func(root string) []string { return []string{"--target", "emacs", "sync", root} },
			wantMsg: "targets",
		},
		"two paths": {
			args:    func(root string) []string { return []string{"sync", root, root + "-other"} },
			wantMsg: "multiple paths provided",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := cursorProject(t)
			_, err := runCLI(t, tt.args(root)...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestSyncCommand_NoRules(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".cursor", "rules"), 0o750); err != nil {
		t.Fatal(err)
	}

	output, err := runCLI(t, "sync", root)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !strings.Contains(output, "No rules found in Cursor source directory.") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestCheckCommand(t *testing.T) {
	root := cursorProject(t)

	output, err := runCLI(t, "check", root)
	if !errors.Is(err, sync.ErrDrift) {
		t.Fatalf("check before sync should report drift, got %v", err)
	}
	for _, want := range []string{"Checking sync status", "Drift detected!", "Files that would be created", "+ .kiro/steering/general.md", "Run 'ruleport sync' to update files."} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if exists(filepath.Join(root, ".kiro")) {
		t.Error("check must not write files")
	}

	if _, err := runCLI(t, "sync", root); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	output, err = runCLI(t, "check", root)
	if err != nil {
		t.Fatalf("check after sync should pass, got %v\n%s", err, output)
	}
	if !strings.Contains(output, "All files are in sync!") {
		t.Errorf("unexpected output:\n%s", output)
	}

	util.WriteFile(t, filepath.Join(root, ".windsurf", "rules", "general.md"), "edited by hand\n")
	output, err = runCLI(t, "check", root)
	if !errors.Is(err, sync.ErrDrift) {
		t.Fatalf("expected drift after hand edit, got %v", err)
	}
	if !strings.Contains(output, "Files that would be modified (1):") || !strings.Contains(output, "~ .windsurf/rules/general.md") {
		t.Errorf("expected one modified file:\n%s", output)
	}
}

func TestStatusCommand(t *testing.T) {
	root := cursorProject(t)
	util.WriteFile(t, filepath.Join(root, ".claude", "CLAUDE.md"), "# notes\n")

	output, err := runCLI(t, "status", root)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	for _, want := range []string{"TOOL", "RULES DIR", "Cursor", "✓ .cursor/rules", "- .kiro/steering", "✓ .claude/CLAUDE.md", "n/a", "Source:  Cursor"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestInitCommand(t *testing.T) {
	root := t.TempDir()

	output, err := runCLI(t, "init", "--tool", "kiro", root)
	if err != nil {
		t.Fatalf("init failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Created 3 rule(s), skipped 0") {
		t.Errorf("unexpected output:\n%s", output)
	}
	for _, id := range []string{"general-standards", "go-standards", "typescript-standards"} {
		if !exists(filepath.Join(root, ".kiro", "steering", id+".md")) {
			t.Errorf("expected %s to be created", id)
		}
	}

	output, err = runCLI(t, "init", "--tool", "kiro", root)
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(output, "Created 0 rule(s), skipped 3") {
		t.Errorf("second init should skip existing files:\n%s", output)
	}
}

func TestInitThenSync(t *testing.T) {
	root := t.TempDir()

	if _, err := runCLI(t, "init", root); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	output, err := runCLI(t, "sync", root, "copilot")
	if err != nil {
		t.Fatalf("sync failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Found 3 rule(s):") {
		t.Errorf("scaffolded cursor rules should load:\n%s", output)
	}
}

func TestConfigShow(t *testing.T) {
	tests := map[string]struct {
		format string
		want   []string
	}{
		"yaml": {format: "yaml", want: []string{"source: claude", "- kiro"}},
		"json": {format: "json", want: []string{`"source": "claude"`, `"log_level": "warn"`}},
		"toml": {format: "toml", want: []string{`source = "claude"`}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			util.WriteFile(t, filepath.Join(root, ".ruleport.yaml"), "source: claude\ntargets: [kiro]\n")

			output, err := runCLI(t, "config", "show", "--format", tt.format, root)
			if err != nil {
				t.Fatalf("config show failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestConfigShow_FlagsOverrideFile(t *testing.T) {
	root := t.TempDir()
	util.WriteFile(t, filepath.Join(root, ".ruleport.yaml"), "source: claude\n")

	output, err := runCLI(t, "--source", "windsurf", "config", "show", root)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(output, "source: windsurf") {
		t.Errorf("flag should override the file:\n%s", output)
	}
}

func TestConfigPath(t *testing.T) {
	root := t.TempDir()

	output, err := runCLI(t, "config", "path", root)
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if !strings.Contains(output, filepath.Join(root, ".ruleport.yaml")) || !strings.Contains(output, "not found") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestFormatConfig_UnknownFormat(t *testing.T) {
	if _, err := formatConfig(nil, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLogLevelFlag(t *testing.T) {
	if _, err := runCLI(t, "--log-level", "loud", "version"); err == nil {
		t.Error("expected error for invalid log level")
	}
	if _, err := runCLI(t, "--log-level", "trace", "version"); err != nil {
		t.Errorf("trace should be accepted: %v", err)
	}
}

func TestWithLogger(t *testing.T) {
	ctx, err := withLogger(context.Background(), "debug")
	if err != nil {
		t.Fatalf("withLogger() error = %v", err)
	}
	logger := logging.FromContext(ctx)
	if logger == nil {
		t.Fatal("expected a logger attached to the context")
	}
	if !logger.Enabled(ctx, logging.LevelDebug) {
		t.Error("debug level should be enabled")
	}

	ctx, err = withLogger(context.Background(), "")
	if err != nil {
		t.Fatalf("withLogger() error = %v", err)
	}
	if l := logging.FromContext(ctx); l == nil || l.Enabled(ctx, logging.LevelInfo) {
		t.Error("empty level should attach a warn logger")
	}

	if _, err := withLogger(context.Background(), "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestLoadProject_Logger(t *testing.T) {
	tests := map[string]struct {
		args      []string
		wantDebug bool
	}{
		"config file level":   {wantDebug: true},
		"flag overrides file": {args: []string{"--log-level", "error"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := cursorProject(t)
			util.WriteFile(t, filepath.Join(root, ".ruleport.yaml"), "log_level: debug\n")

			var p *project
			cmd := &cli.Command{
				Name:  "ruleport",
				Flags: globalFlags(),
				Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
					return withLogger(ctx, cmd.String("log-level"))
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					var err error
					p, err = loadProject(ctx, cmd)
					return err
				},
			}
			args := append(append([]string{"ruleport"}, tt.args...), root)
			if err := cmd.Run(context.Background(), args); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if p == nil || p.Logger == nil {
				t.Fatal("expected a project logger")
			}
			if got := p.Logger.Enabled(context.Background(), logging.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestInitCommand_WriteConfig(t *testing.T) {
	root := t.TempDir()

	output, err := runCLI(t, "init", "--tool", "windsurf", "--write-config", root)
	if err != nil {
		t.Fatalf("init failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, ".ruleport.yaml") {
		t.Errorf("expected config file in output:\n%s", output)
	}
	data, err := os.ReadFile(filepath.Join(root, ".ruleport.yaml"))
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "source: windsurf") {
		t.Errorf("config should name windsurf as source:\n%s", data)
	}

	output, err = runCLI(t, "sync", root, "kiro")
	if err != nil {
		t.Fatalf("sync failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Source: Windsurf") {
		t.Errorf("sync should read the configured source:\n%s", output)
	}

	output, err = runCLI(t, "init", "--tool", "windsurf", "--write-config", root)
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(output, ".ruleport.yaml already exists") {
		t.Errorf("existing config should be kept:\n%s", output)
	}
}
