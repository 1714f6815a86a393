// Package ui provides terminal output helpers for ruleport.
package ui

import (
	"os"

	"github.com/fatih/color"
)

// Color functions for styled output.
var (
	// Success marks written files and clean checks (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error marks failed targets (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning marks adapter warnings and drift (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for rule ids and tool names (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	Bold = color.New(color.Bold).SprintFunc()
	Dim  = color.New(color.Faint).SprintFunc()
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolSkipped = "-"
	SymbolCreate  = "+"
	SymbolModify  = "~"
)

func status(paint func(...any) string, symbol, msg string) string {
	if msg == "" {
		return paint(symbol)
	}
	return paint(symbol) + " " + msg
}

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string { return status(Success, SymbolSuccess, msg) }

// StatusError returns a red X with optional message.
func StatusError(msg string) string { return status(Error, SymbolError, msg) }

// StatusWarning returns a yellow warning sign with optional message.
func StatusWarning(msg string) string { return status(Warning, SymbolWarning, msg) }

// StatusSkipped returns a dimmed dash with optional message.
func StatusSkipped(msg string) string { return status(Dim, SymbolSkipped, msg) }

// StatusCreate marks a file that would be created.
func StatusCreate(msg string) string { return status(Success, SymbolCreate, msg) }

// StatusModify marks a file that would be modified.
func StatusModify(msg string) string { return status(Warning, SymbolModify, msg) }

// Configure applies the --no-color flag and the NO_COLOR convention.
// Color is otherwise left to fatih/color's terminal detection.
func Configure(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		DisableColors()
	}
}

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}
