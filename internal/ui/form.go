package ui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/library"
)

type formMode int

const (
	formCreate formMode = iota
	formEdit
)

const (
	fieldTitle = iota
	fieldAuthor
	fieldYear
	fieldCount
)

// Generic failure messages shown when the gateway rejects a submission.
const (
	msgCreateFailed = "Failed to add book. Please try again."
	msgUpdateFailed = "Failed to update book. Please try again."
)

var fieldLabels = [fieldCount]string{"Title", "Author", "Year"}

// submitFunc starts the store call for a validated draft. The returned
// command must report back with a formSubmittedMsg carrying token.
type submitFunc func(token uint64, draft library.Draft) tea.Cmd

// formSubmittedMsg reports the outcome of a create or update.
type formSubmittedMsg struct {
	token uint64
	book  library.Book
	err   error
}

// bookForm is the create/edit dialog.
type bookForm struct {
	mode       formMode
	bookID     int64
	inputs     [fieldCount]textinput.Model
	focus      int
	err        string
	submitting bool
	token      uint64
	submit     submitFunc
	onSuccess  tea.Cmd
	now        func() time.Time
}

func newBookForm(mode formMode, token uint64, submit submitFunc, onSuccess tea.Cmd, now func() time.Time) *bookForm {
	if now == nil {
		now = time.Now
	}
	f := &bookForm{
		mode:      mode,
		token:     token,
		submit:    submit,
		onSuccess: onSuccess,
		now:       now,
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].Placeholder = "Title"
	f.inputs[fieldAuthor].Placeholder = "Author"
	f.inputs[fieldYear].Placeholder = strconv.Itoa(now().Year())
	f.inputs[fieldYear].CharLimit = 8
	f.inputs[fieldTitle].Focus()
	return f
}

// newEditForm returns a form pre-filled from book.
func newEditForm(book library.Book, token uint64, submit submitFunc, onSuccess tea.Cmd, now func() time.Time) *bookForm {
	f := newBookForm(formEdit, token, submit, onSuccess, now)
	f.bookID = book.ID
	f.inputs[fieldTitle].SetValue(book.Title)
	f.inputs[fieldAuthor].SetValue(book.Author)
	f.inputs[fieldYear].SetValue(strconv.Itoa(book.PublishYear))
	return f
}

func (f *bookForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case formSubmittedMsg:
		if msg.token != f.token {
			return f, nil, false
		}
		f.submitting = false
		if msg.err != nil {
			var verr *library.ValidationError
			switch {
			case errors.As(msg.err, &verr):
				f.err = verr.Message
			case f.mode == formEdit:
				f.err = msgUpdateFailed
			default:
				f.err = msgCreateFailed
			}
			return f, nil, false
		}
		f.err = ""
		if f.mode == formCreate {
			f.reset()
		}
		return f, f.onSuccess, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Close):
			return f, nil, true
		case key.Matches(msg, keys.Submit):
			return f, f.trySubmit(), false
		case key.Matches(msg, keys.NextField):
			f.setFocus(f.focus + 1)
			return f, nil, false
		case key.Matches(msg, keys.PrevField):
			f.setFocus(f.focus - 1)
			return f, nil, false
		case msg.Type == tea.KeyEnter:
			if f.focus < fieldCount-1 {
				f.setFocus(f.focus + 1)
				return f, nil, false
			}
			return f, f.trySubmit(), false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// trySubmit validates the inputs and, when they pass, starts the submission.
// Invalid input sets the inline error and issues no request.
func (f *bookForm) trySubmit() tea.Cmd {
	if f.submitting {
		return nil
	}
	draft, err := library.ValidateInput(
		f.inputs[fieldTitle].Value(),
		f.inputs[fieldAuthor].Value(),
		f.inputs[fieldYear].Value(),
		f.now(),
	)
	if err != nil {
		f.err = err.Error()
		return nil
	}
	f.err = ""
	f.submitting = true
	if f.submit == nil {
		return nil
	}
	return f.submit(f.token, draft)
}

func (f *bookForm) setFocus(idx int) {
	idx = (idx + fieldCount) % fieldCount
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = idx
}

func (f *bookForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.setFocus(fieldTitle)
}

func (f *bookForm) title() string {
	if f.mode == formEdit {
		return "Edit Book"
	}
	return "Add Book"
}

func (f *bookForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	labelStyle := lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color(theme.Muted))
	focusLabel := labelStyle.Foreground(lipgloss.Color(theme.Accent)).Bold(true)

	var b strings.Builder
	for i := range f.inputs {
		in := f.inputs[i]
		in.TextStyle = styles.Text
		in.PlaceholderStyle = styles.FaintText
		in.Cursor.Style = styles.AccentText

		label := labelStyle
		if i == f.focus {
			label = focusLabel
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	switch {
	case f.submitting:
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("Saving..."))
	case f.err != "":
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(f.err))
	}

	return renderOverlay(theme, f.title(), strings.TrimRight(b.String(), "\n"),
		"tab next · enter save · esc cancel", width, height)
}

// confirmDelete asks before deleting a book.
type confirmDelete struct {
	book      library.Book
	onConfirm tea.Cmd
}

func (c confirmDelete) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm):
		return c, c.onConfirm, true
	case key.Matches(keyMsg, keys.Cancel):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmDelete) View(theme Theme, width, height int) string {
	body := theme.Styles().Text.Render(deletePrompt(c.book))
	return renderOverlay(theme, "Delete Book", body, "y confirm · esc cancel", width, height)
}

func deletePrompt(book library.Book) string {
	return `Are you sure you want to delete "` + book.Title + `"?`
}
