package ui

import (
	"strings"
	"testing"

	"github.com/five82/shelf/internal/logtail"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}

	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames() exposes internal order")
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"missing":  "Nightfox",
	}
	for current, want := range tests {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme_DefaultsToNightfox(t *testing.T) {
	if got := GetTheme("Kanagawa").Name; got != "Kanagawa" {
		t.Fatalf("GetTheme(Kanagawa).Name = %q", got)
	}
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope).Name = %q, want Nightfox", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"The Lord of the Rings", 10, "The Lor..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
		{"日本語のタイトル", 5, "日本..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("Oda", 6); got != "Oda   " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("Herbert", 5); got != "He..." {
		t.Fatalf("padRight long = %q", got)
	}
	if got := padRight("x", 0); got != "" {
		t.Fatalf("padRight zero width = %q", got)
	}
}

func TestClassifyConnectionError(t *testing.T) {
	if got := classifyConnectionError(nil); got != "" {
		t.Fatalf("nil error classified as %q", got)
	}
	if got := classifyConnectionError(errString("dial tcp: connect: connection refused")); got != "OFFLINE" {
		t.Fatalf("connection refused = %q", got)
	}
	if got := classifyConnectionError(errString("context deadline exceeded")); got != "TIMEOUT" {
		t.Fatalf("deadline = %q", got)
	}
}

func TestLogLevelCycle(t *testing.T) {
	var s logState
	want := []string{"INFO+", "WARN+", "ERROR+", "All"}
	for _, w := range want {
		s.cycleLevel()
		if got := s.levelLabel(); got != w {
			t.Fatalf("levelLabel = %q, want %q", got, w)
		}
	}
}

func TestRenderLogContent_FiltersByLevel(t *testing.T) {
	m := Model{theme: GetTheme("Slate"), width: 100, height: 20, logFile: "/tmp/shelf.log"}
	m.logState.rawLines = []string{
		`time=2025-06-01T10:00:00Z level=INFO msg="refresh ok"`,
		`time=2025-06-01T10:00:01Z level=ERROR msg="delete failed" id=4`,
	}
	m.logState.minLevel = logtail.LevelWarn

	out := m.renderLogContent()
	if strings.Contains(out, "refresh ok") {
		t.Fatalf("info line shown at WARN+:\n%s", out)
	}
	if !strings.Contains(out, "delete failed") {
		t.Fatalf("error line missing:\n%s", out)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
