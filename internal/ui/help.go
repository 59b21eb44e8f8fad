package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// helpModal lists the key bindings. Any key closes it.
type helpModal struct{}

func (h helpModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return h, nil, true
	}
	return h, nil, false
}

func (h helpModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	sections := []helpSection{
		{
			title: "Books",
			items: []helpItem{
				{"enter/v", "View details"},
				{"a", "Add book"},
				{"e", "Edit book"},
				{"d/x", "Delete book"},
				{"r", "Refresh (retry in details)"},
			},
		},
		{
			title: "Navigation",
			items: []helpItem{
				{"j/k", "Move down/up"},
				{"g/G", "Go to top/bottom"},
				{"esc", "Back to list"},
				{"L", "Activity log"},
				{"f", "Cycle log level"},
			},
		},
		{
			title: "Forms",
			items: []helpItem{
				{"tab/shift+tab", "Next/previous field"},
				{"enter", "Next field, save on last"},
				{"ctrl+s", "Save"},
				{"esc", "Cancel"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Warning)).
		Width(15)

	var b strings.Builder
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return renderOverlay(theme, "Keyboard Shortcuts", strings.TrimRight(b.String(), "\n"), "any key to close", width, height)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
