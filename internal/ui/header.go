package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/shelf/internal/library"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("shelf", styles.Logo)}
	if !compact && m.apiURL != "" {
		parts = append(parts, bg.Render(truncate(m.apiURL, 40), styles.FaintText))
	}

	snap := m.snapshot
	switch {
	case snap.IsOffline():
		parts = append(parts, bg.Render("GATEWAY "+classifyConnectionError(snap.LastError), styles.DangerText))
	case snap.LastError != nil:
		parts = append(parts, bg.Render("Refresh failed", styles.WarningText.Bold(true)))
	case !snap.Loaded:
		parts = append(parts, bg.Render("Loading books...", styles.WarningText.Bold(true)))
	default:
		parts = append(parts, bg.Render(fmt.Sprintf("%d books", len(snap.Books)), styles.SuccessText))
	}

	if !snap.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("updated", styles.FaintText)+bg.Space()+
			bg.Render(snap.LastUpdated.Local().Format("15:04:05"), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// classifyConnectionError condenses an error into a short label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *library.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("HTTP %d", statusErr.Code)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "decode"):
		return "BAD RESPONSE"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints for the current view, or the
// active notice.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.notice != "" {
		return styles.Header.Width(m.width).Render(bg.Render(m.notice, styles.WarningText.Bold(true)))
	}

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{
			{"esc", "Back"},
			{"r", "Reload"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"f", m.logState.levelLabel()},
			{"esc", "Back"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"enter", "View"},
			{"a", "Add"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"r", "Refresh"},
			{"L", "Log"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
