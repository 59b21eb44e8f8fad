// Package logtail reads the tail of the dashboard's slog log file.
//
// The TUI owns the terminal, so log output goes to a file and the activity
// view shows its last lines. Read keeps a ring buffer of maxLines entries
// while scanning, so memory stays O(maxLines) regardless of file size, and
// returns the lines in file order. A missing file is treated as empty.
//
// LevelOf recognizes the level=... attribute that slog's text handler
// writes, and Filter drops lines below a minimum level. Lines from other
// sources (panics, third-party output) have LevelUnknown.
package logtail
