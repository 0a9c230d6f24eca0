// Package ui holds the terminal styling helpers used by the td CLI.
package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI 256 palette for help output.
const (
	accentCode  = 74  // blue, section headers
	commandCode = 250 // light gray, command names
	mutedCode   = 245 // medium gray, annotations
)

func paint(code int, s string) string {
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// Accent styles s as a section header.
func Accent(s string) string { return paint(accentCode, s) }

// Command styles s as a command name.
func Command(s string) string { return paint(commandCode, s) }

// Muted styles s as a secondary annotation.
func Muted(s string) string { return paint(mutedCode, s) }

// ColorEnabled reports whether stdout should receive ANSI colors. It follows
// the NO_COLOR and CLICOLOR conventions and falls back to TTY detection.
func ColorEnabled() bool {
	// https://no-color.org — any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
