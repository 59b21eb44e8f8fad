package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/library"
)

type detailStatus int

const (
	detailIdle detailStatus = iota
	detailLoading
	detailLoaded
	detailFailed
)

// noticeNotFound is shown when the detail fetch returns 404.
const noticeNotFound = "Book not found"

// detailState tracks the single record shown by the detail view.
type detailState struct {
	id     int64
	token  uint64
	status detailStatus
	book   library.Book
	err    error
}

type bookLoadedMsg struct {
	id    int64
	token uint64
	book  library.Book
	err   error
}

// openDetail switches to the detail view and fetches id straight from the
// gateway. An absent id issues no request.
func (m *Model) openDetail(id int64) tea.Cmd {
	m.currentView = ViewDetail
	m.detail = detailState{id: id}
	if id <= 0 || m.client == nil {
		return nil
	}
	m.detail.status = detailLoading
	m.detail.token = m.issueToken()
	return fetchBookCmd(m.ctx, m.client, id, m.detail.token)
}

func fetchBookCmd(ctx context.Context, client library.BookService, id int64, token uint64) tea.Cmd {
	return func() tea.Msg {
		book, err := client.FetchBook(ctx, id)
		return bookLoadedMsg{id: id, token: token, book: book, err: err}
	}
}

// handleBookLoaded applies a fetch result if the user is still looking at
// the view that asked for it.
func (m Model) handleBookLoaded(msg bookLoadedMsg) (tea.Model, tea.Cmd) {
	if m.currentView != ViewDetail || msg.token != m.detail.token || msg.id != m.detail.id {
		return m, nil
	}
	if msg.err != nil {
		if errors.Is(msg.err, library.ErrNotFound) {
			m.currentView = ViewList
			m.detail = detailState{}
			return m, m.setNotice(noticeNotFound)
		}
		m.logger.Error("fetch book failed", "id", msg.id, "error", msg.err)
		m.detail.status = detailFailed
		m.detail.err = msg.err
		return m, nil
	}
	m.detail.status = detailLoaded
	m.detail.book = msg.book
	m.detail.err = nil
	return m, nil
}

// applySavedBook shows book in the detail view when it is the record on
// screen.
func (m *Model) applySavedBook(book library.Book) {
	if m.currentView != ViewDetail || m.detail.status != detailLoaded || m.detail.id != book.ID {
		return
	}
	m.detail.book = book
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewList
		m.detail = detailState{}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if m.detail.status == detailLoading {
			return m, nil
		}
		return m, m.openDetail(m.detail.id)
	case key.Matches(msg, m.keys.Edit):
		if m.detail.status == detailLoaded {
			m.openEditForm(m.detail.book)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if m.detail.status == detailLoaded {
			m.openDeleteConfirm(m.detail.book)
			m.currentView = ViewList
		}
		return m, nil
	}
	return m, nil
}

// renderDetail renders the detail view.
func (m Model) renderDetail() string {
	contentHeight := max(m.height-2, 3)
	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	title := "Book"
	var body string
	switch m.detail.status {
	case detailIdle:
		body = bg.Render("No book selected", styles.MutedText)
	case detailLoading:
		title = "Book #" + strconv.FormatInt(m.detail.id, 10)
		body = bg.Render("Loading...", styles.WarningText)
	case detailFailed:
		title = "Book #" + strconv.FormatInt(m.detail.id, 10)
		lines := []string{
			bg.Render("Could not load this book.", styles.DangerText),
			"",
			bg.Render(truncate(classifyConnectionError(m.detail.err)+": "+m.detail.err.Error(), max(m.width-8, 10)), styles.MutedText),
			"",
			bg.Render("r", styles.AccentText) + bg.Sep(":") + bg.Render("Retry", styles.MutedText) + bg.Spaces(2) +
				bg.Render("esc", styles.AccentText) + bg.Sep(":") + bg.Render("Back", styles.MutedText),
		}
		body = strings.Join(lines, "\n")
	case detailLoaded:
		title = truncate(m.detail.book.Title, max(m.width-10, 10))
		body = m.renderBookFields(m.detail.book, bg, styles)
	}

	padded := lipgloss.NewStyle().Padding(1, 2).Background(lipgloss.Color(bgColor)).Render(body)
	return m.renderTitledBox(title, padded, m.width, contentHeight, true)
}

func (m Model) renderBookFields(book library.Book, bg BgStyle, styles Styles) string {
	type field struct{ label, value string }
	fields := []field{
		{"ID", strconv.FormatInt(book.ID, 10)},
		{"Title", book.Title},
		{"Author", book.Author},
		{"Year", strconv.Itoa(book.PublishYear)},
	}
	if t := book.ParsedCreatedAt(); !t.IsZero() {
		fields = append(fields, field{"Created", formatTimestamp(t)})
	}
	if t := book.ParsedUpdatedAt(); !t.IsZero() {
		fields = append(fields, field{"Updated", formatTimestamp(t)})
	}

	valueWidth := max(m.width-20, 10)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines,
			bg.Render(padRight(f.label, 10), styles.MutedText)+bg.Render(truncate(f.value, valueWidth), styles.Text))
	}
	return strings.Join(lines, "\n")
}
