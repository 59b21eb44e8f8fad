package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

const (
	overlayMinWidth = 36
	overlayMaxWidth = 64
)

// renderOverlay draws body inside a titled, rounded box centered on a
// width x height screen, with hint shown beneath the body. It has no
// behavior of its own.
func renderOverlay(theme Theme, title, body, hint string, width, height int) string {
	styles := theme.Styles()

	boxWidth := min(max(width*2/3, overlayMinWidth), overlayMaxWidth)
	if width > 0 && boxWidth > width-2 {
		boxWidth = max(width-2, 10)
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(boxWidth-6, 1))))
	b.WriteString("\n\n")
	b.WriteString(body)
	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render(hint))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
