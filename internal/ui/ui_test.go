package ui

import (
	"strings"
	"testing"
)

func TestColorEnabled(t *testing.T) {
	// Tests run with stdout attached to a pipe, so the TTY fallback is
	// always false here.
	tests := []struct {
		name    string
		noColor string
		force   string
		cliclr  string
		want    bool
	}{
		{"default non-tty", "", "", "", false},
		{"force enables", "", "1", "", true},
		{"NO_COLOR wins over force", "1", "1", "", false},
		{"CLICOLOR=0 disables", "", "", "0", false},
		{"force wins over CLICOLOR=0", "", "1", "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("CLICOLOR_FORCE", tt.force)
			t.Setenv("CLICOLOR", tt.cliclr)
			if got := ColorEnabled(); got != tt.want {
				t.Errorf("ColorEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStyles(t *testing.T) {
	for name, fn := range map[string]func(string) string{
		"Accent":  Accent,
		"Command": Command,
		"Muted":   Muted,
	} {
		got := fn("hello")
		if !strings.Contains(got, "hello") {
			t.Errorf("%s: output %q missing input text", name, got)
		}
		if !strings.HasPrefix(got, "\x1b[38;5;") || !strings.HasSuffix(got, "\x1b[0m") {
			t.Errorf("%s: output %q missing ANSI escape or reset", name, got)
		}
	}
}
