package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "shelf.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial", maxLines: 5, expected: all[5:]},
		{name: "exact", maxLines: 10, expected: all},
		{name: "more than exists", maxLines: 20, expected: all},
		{name: "ring wraps", maxLines: 3, expected: all[7:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestLevelOf(t *testing.T) {
	tests := map[string]Level{
		`time=2025-01-01T00:00:00Z level=INFO msg="shelf starting"`:                     LevelInfo,
		`time=2025-01-01T00:00:00Z level=ERROR msg="refresh failed" op=refresh`:         LevelError,
		`time=2025-01-01T00:00:00Z level=DEBUG msg="discarding stale refresh" seq=3`:    LevelDebug,
		`time=2025-01-01T00:00:00Z level=WARN+2 msg="slow gateway"`:                     LevelWarn,
		`panic: runtime error`:                                                          LevelUnknown,
		`time=2025-01-01T00:00:00Z level=TRACE msg=x`:                                   LevelUnknown,
	}
	for line, want := range tests {
		if got := LevelOf(line); got != want {
			t.Errorf("LevelOf(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		"level=DEBUG msg=a",
		"level=INFO msg=b",
		"level=ERROR msg=c",
		"plain text",
	}
	if got := Filter(lines, LevelUnknown); !reflect.DeepEqual(got, lines) {
		t.Fatalf("Filter(unknown) = %v, want all lines", got)
	}
	want := []string{"level=INFO msg=b", "level=ERROR msg=c"}
	if got := Filter(lines, LevelInfo); !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter(info) = %v, want %v", got, want)
	}
}
