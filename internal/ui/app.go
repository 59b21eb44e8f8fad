package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/logtail"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    library.BookService // used directly by the detail view
	Store     *state.Store
	Logger    *slog.Logger
	LogFile   string
	APIURL    string
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    library.BookService
	store     *state.Store
	logger    *slog.Logger
	logFile   string
	apiURL    string
	prefsPath string
	pollTick  time.Duration
	now       func() time.Time
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	modal       Modal
	nextToken   uint64

	// Transient notice shown in the command bar
	notice    string
	noticeSeq int

	// Data state
	snapshot state.Snapshot

	// List state
	selectedRow int

	// Detail state
	detail detailState

	// Log state
	logViewport viewport.Model
	logState    logState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		logger:      logger.With("component", "ui"),
		logFile:     opts.LogFile,
		apiURL:      opts.APIURL,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		now:         now,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewList,
		logState:    logState{minLevel: logtail.LevelUnknown},
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model. The list view refreshes once on start.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, refreshCmd(m.ctx, m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case refreshedMsg:
		m.applySnapshot(msg.snapshot)
		return m, nil

	case deletedMsg:
		m.applySnapshot(msg.snapshot)
		if msg.err != nil {
			return m, m.setNotice("Failed to delete book. Please try again.")
		}
		return m, nil

	case dialogClosedMsg:
		m.modal = nil
		if m.store == nil {
			return m, nil
		}
		return m, refreshCmd(m.ctx, m.store)

	case formSubmittedMsg:
		if m.modal == nil {
			return m, nil
		}
		if form, ok := m.modal.(*bookForm); ok && form.token == msg.token && msg.err == nil {
			m.applySavedBook(msg.book)
		}
		return m.updateModal(msg)

	case bookLoadedMsg:
		return m.handleBookLoaded(msg)

	case logsLoadedMsg:
		m.handleLogsLoaded(msg)
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	// Everything else (form results, cursor blinks) belongs to the open dialog.
	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = modal
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.modal = helpModal{}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		return m, m.refreshLogs()
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// handleTick processes the UI tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// applySnapshot installs snap unless a later snapshot is already shown.
// Snapshot reads run concurrently, so an older read can arrive last.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if m.snapshot.NewerThan(snap) {
		return
	}
	m.snapshot = snap
	m.clampSelection()
}

func (m *Model) issueToken() uint64 {
	m.nextToken++
	return m.nextToken
}

// setNotice shows text in the command bar until NoticeDuration passes.
func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderList()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type refreshedMsg struct {
	snapshot state.Snapshot
	err      error
}

type deletedMsg struct {
	id       int64
	err      error
	snapshot state.Snapshot
}

// dialogClosedMsg is emitted by a dialog's completion callback.
type dialogClosedMsg struct{}

type noticeExpiredMsg struct{ seq int }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func refreshCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		err := store.Refresh(ctx)
		return refreshedMsg{snapshot: store.Snapshot(), err: err}
	}
}

// deleteCmd deletes id and then refreshes, whatever the delete returned.
func deleteCmd(ctx context.Context, store *state.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		err := store.Delete(ctx, id)
		_ = store.Refresh(ctx)
		return deletedMsg{id: id, err: err, snapshot: store.Snapshot()}
	}
}

func closeDialogCmd() tea.Msg {
	return dialogClosedMsg{}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
