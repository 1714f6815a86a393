package source

import "github.com/lewiesnyder/RulePort/internal/parser"

// cursorScope: alwaysApply must be the boolean true, globs is a sequence.
func cursorScope(meta map[string]any) (bool, []string) {
	return parser.IsTrue(meta, "alwaysApply"), parser.StringList(meta, "globs")
}

// claudeScope: always_apply must be the boolean true, paths is a sequence.
func claudeScope(meta map[string]any) (bool, []string) {
	return parser.IsTrue(meta, "always_apply"), parser.StringList(meta, "paths")
}

// copilotScope: a missing or empty applyTo means every file. A string value
// is read as a comma separated list.
func copilotScope(meta map[string]any) (bool, []string) {
	applyTo := parser.CommaList(meta, "applyTo")
	if len(applyTo) == 0 {
		return true, nil
	}
	return false, applyTo
}

// antigravityScope: a missing or empty globs sequence means every file.
func antigravityScope(meta map[string]any) (bool, []string) {
	globs := parser.StringList(meta, "globs")
	return len(globs) == 0, globs
}

// kiroScope: inclusion defaults to always; patterns are only read for
// fileMatch inclusion.
func kiroScope(meta map[string]any) (bool, []string) {
	inclusion, ok := parser.String(meta, "inclusion")
	if !ok {
		inclusion = "always"
	}
	if inclusion == "always" || !parser.Truthy(meta, "inclusion") {
		return true, nil
	}
	if inclusion != "fileMatch" {
		return false, nil
	}
	return false, parser.StringOrList(meta, "fileMatchPattern")
}

// windsurfScope: trigger defaults to always_on; any other trigger reads globs.
func windsurfScope(meta map[string]any) (bool, []string) {
	trigger, ok := parser.String(meta, "trigger")
	if !ok {
		trigger = "always_on"
	}
	if trigger == "always_on" {
		return true, nil
	}
	return false, parser.CommaList(meta, "globs")
}
