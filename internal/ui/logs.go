package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/logtail"
)

// logState holds the activity log view state.
type logState struct {
	rawLines []string
	minLevel logtail.Level
	follow   bool
	loading  bool
	err      error
}

type logsLoadedMsg struct {
	lines []string
	err   error
}

var levelCycle = []logtail.Level{
	logtail.LevelUnknown,
	logtail.LevelInfo,
	logtail.LevelWarn,
	logtail.LevelError,
}

func (s logState) levelLabel() string {
	if s.minLevel == logtail.LevelUnknown {
		return "All"
	}
	return s.minLevel.String() + "+"
}

func (s *logState) cycleLevel() {
	for i, lvl := range levelCycle {
		if lvl == s.minLevel {
			s.minLevel = levelCycle[(i+1)%len(levelCycle)]
			return
		}
	}
	s.minLevel = logtail.LevelUnknown
}

// initLogViewport initializes the log viewport.
func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-4, 1), max(m.height-4, 1))
	m.logState.follow = true
}

// updateLogViewport resizes the viewport and re-renders its content.
func (m *Model) updateLogViewport() {
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.height-4, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// refreshLogs reads the tail of the log file unless a read is in flight.
func (m *Model) refreshLogs() tea.Cmd {
	if m.logState.loading || m.logFile == "" {
		return nil
	}
	m.logState.loading = true
	path := m.logFile
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logsLoadedMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogsLoaded(msg logsLoadedMsg) {
	m.logState.loading = false
	m.logState.err = msg.err
	if msg.err == nil {
		m.logState.rawLines = msg.lines
	}
	m.updateLogViewport()
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewList
		return m, nil
	case key.Matches(msg, m.keys.CycleLevel):
		m.logState.cycleLevel()
		m.updateLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.logState.follow = false
		m.logViewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.logViewport.LineDown(1)
		m.logState.follow = m.logViewport.AtBottom()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logState.follow = false
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logState.follow = true
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// renderLogs renders the activity log view.
func (m Model) renderLogs() string {
	contentHeight := max(m.height-2, 3)
	title := "Activity"
	if m.logState.minLevel != logtail.LevelUnknown {
		title = fmt.Sprintf("Activity (%s)", m.logState.levelLabel())
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, contentHeight, true)
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)

	if m.logState.err != nil {
		return bg.Render("Could not read "+m.logFile+": "+m.logState.err.Error(), styles.DangerText)
	}
	lines := logtail.Filter(m.logState.rawLines, m.logState.minLevel)
	if len(lines) == 0 {
		return bg.Render("No log entries yet", styles.MutedText)
	}

	width := max(m.width-4, 10)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, bg.Render(truncate(line, width), levelStyle(logtail.LevelOf(line), styles)))
	}
	return strings.Join(out, "\n")
}

func levelStyle(level logtail.Level, styles Styles) lipgloss.Style {
	switch level {
	case logtail.LevelError:
		return styles.DangerText
	case logtail.LevelWarn:
		return styles.WarningText
	case logtail.LevelDebug:
		return styles.FaintText
	case logtail.LevelInfo:
		return styles.Text
	default:
		return styles.MutedText
	}
}
