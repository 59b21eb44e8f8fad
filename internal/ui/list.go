package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/library"
)

// emptyListPlaceholder is the single row shown when there are no books.
const emptyListPlaceholder = "No books found"

// handleListKey processes keyboard input for the list view.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Books)

	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.store == nil {
			return m, nil
		}
		return m, refreshCmd(m.ctx, m.store)

	case key.Matches(msg, m.keys.Add):
		m.modal = newBookForm(formCreate, m.issueToken(), m.submitCreate, closeDialogCmd, m.now)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(count-1, 0)
		return m, nil
	}

	book, ok := m.selectedBook()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		return m, m.openDetail(book.ID)
	case key.Matches(msg, m.keys.Edit):
		m.openEditForm(book)
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		m.openDeleteConfirm(book)
		return m, nil
	}
	return m, nil
}

func (m *Model) openEditForm(book library.Book) {
	m.modal = newEditForm(book, m.issueToken(), m.submitUpdate(book.ID), closeDialogCmd, m.now)
}

func (m *Model) openDeleteConfirm(book library.Book) {
	var onConfirm tea.Cmd
	if m.store != nil {
		onConfirm = deleteCmd(m.ctx, m.store, book.ID)
	}
	m.modal = confirmDelete{book: book, onConfirm: onConfirm}
}

func (m Model) submitCreate(token uint64, draft library.Draft) tea.Cmd {
	store, ctx := m.store, m.ctx
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		book, err := store.Create(ctx, draft)
		return formSubmittedMsg{token: token, book: book, err: err}
	}
}

func (m Model) submitUpdate(id int64) submitFunc {
	store, ctx := m.store, m.ctx
	return func(token uint64, draft library.Draft) tea.Cmd {
		if store == nil {
			return nil
		}
		return func() tea.Msg {
			book, err := store.Update(ctx, id, draft)
			return formSubmittedMsg{token: token, book: book, err: err}
		}
	}
}

func (m Model) selectedBook() (library.Book, bool) {
	books := m.snapshot.Books
	if m.selectedRow < 0 || m.selectedRow >= len(books) {
		return library.Book{}, false
	}
	return books[m.selectedRow], true
}

func (m *Model) clampSelection() {
	count := len(m.snapshot.Books)
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// renderList renders the book table with an optional error banner.
func (m Model) renderList() string {
	contentHeight := max(m.height-2, 3) // header + command bar

	var banner string
	if err := m.snapshot.LastError; err != nil {
		text := fmt.Sprintf("Refresh failed (%s). Showing the last loaded list. Press r to retry.",
			classifyConnectionError(err))
		banner = m.theme.Styles().Banner.Width(m.width).Render(truncate(text, max(m.width-2, 1)))
		contentHeight--
	}

	title := fmt.Sprintf("Books (%d)", len(m.snapshot.Books))
	table := m.renderBookTable(m.width-2, m.theme.FocusBg)
	box := m.renderTitledBox(title, table, m.width, contentHeight, true)

	if banner == "" {
		return box
	}
	return banner + "\n" + box
}

type columnWidths struct {
	title, author, year, updated int
}

func (m Model) columnWidths(width int) columnWidths {
	cols := columnWidths{year: yearColumnWidth}
	if m.width >= LayoutTimestampsWidth {
		cols.updated = updatedColumnWidth
	}
	gaps := 2
	if cols.updated > 0 {
		gaps = 3
	}
	// one space of padding on each side
	rest := width - 2 - cols.year - cols.updated - gaps
	cols.author = max(rest*2/5, 8)
	cols.title = max(rest-cols.author, minTitleWidth)
	return cols
}

// renderBookTable renders the header row and one row per book. With no books
// a single placeholder row spans every column.
func (m Model) renderBookTable(width int, bgColor string) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	cols := m.columnWidths(width)

	headerCells := []string{
		padRight("Title", cols.title),
		padRight("Author", cols.author),
		padRight("Year", cols.year),
	}
	if cols.updated > 0 {
		headerCells = append(headerCells, padRight("Updated", cols.updated))
	}
	lines := []string{
		bg.FillLine(bg.Space()+bg.Render(strings.Join(headerCells, " "), styles.MutedText.Bold(true)), width),
	}

	books := m.snapshot.Books
	if len(books) == 0 {
		placeholder := lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Foreground(lipgloss.Color(m.theme.Muted)).
			Width(width).
			Align(lipgloss.Center).
			Render(emptyListPlaceholder)
		return strings.Join(append(lines, placeholder), "\n")
	}

	for i, book := range books {
		selected := i == m.selectedRow
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatBookRow(book, cols, rowBg, selected)
		lines = append(lines, NewBgStyle(rowBg).FillLine(content, width))
	}
	return strings.Join(lines, "\n")
}

// formatBookRow formats one table row. Selected rows use SelectionText for
// every cell to keep contrast.
func (m Model) formatBookRow(book library.Book, cols columnWidths, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	var titleStyle, authorStyle, yearStyle, faintStyle lipgloss.Style
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle, authorStyle, yearStyle, faintStyle = sel.Bold(true), sel, sel, sel
	} else {
		styles := m.theme.Styles()
		titleStyle = styles.Text
		authorStyle = styles.MutedText
		yearStyle = styles.AccentText
		faintStyle = styles.FaintText
	}

	parts := []string{
		bg.Render(padRight(book.Title, cols.title), titleStyle),
		bg.Render(padRight(book.Author, cols.author), authorStyle),
		bg.Render(padRight(strconv.Itoa(book.PublishYear), cols.year), yearStyle),
	}
	if cols.updated > 0 {
		stamp := book.ParsedUpdatedAt()
		if stamp.IsZero() {
			stamp = book.ParsedCreatedAt()
		}
		parts = append(parts, bg.Render(padRight(formatTimestamp(stamp), cols.updated), faintStyle))
	}
	return bg.Space() + strings.Join(parts, bg.Space())
}

// renderTitledBox renders content in a box with the title embedded in the top border:
// ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := len([]rune(title))
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 1)

	rows := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		rows = append(rows, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(rows, "\n") + "\n" + bottomBorder
}
