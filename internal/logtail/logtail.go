package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Level is the severity parsed from a slog text line.
type Level int

// Levels in increasing severity. LevelUnknown sorts below everything.
const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return ""
	}
}

// Read returns at most maxLines from the end of the file at path. A
// missing file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, count)
	lines = append(lines, ring[next:]...)
	lines = append(lines, ring[:next]...)
	return lines, nil
}

// LevelOf extracts the level=... attribute written by slog's text handler.
func LevelOf(line string) Level {
	idx := strings.Index(line, "level=")
	if idx < 0 {
		return LevelUnknown
	}
	value := line[idx+len("level="):]
	if end := strings.IndexByte(value, ' '); end >= 0 {
		value = value[:end]
	}
	// slog renders offsets such as WARN+2.
	if plus := strings.IndexAny(value, "+-"); plus > 0 {
		value = value[:plus]
	}
	switch strings.ToUpper(value) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelUnknown
	}
}

// Filter keeps the lines at or above min. Lines without a level are kept
// only when min is LevelUnknown.
func Filter(lines []string, min Level) []string {
	if min == LevelUnknown {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if LevelOf(line) >= min {
			out = append(out, line)
		}
	}
	return out
}
