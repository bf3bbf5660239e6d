package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/prefs"
	"github.com/five82/bookshelf/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewSearch View = iota
	ViewLogs
)

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

// Searcher is the search surface the UI drives. *search.Coordinator
// implements it.
type Searcher interface {
	UpdateInput(text string)
	ClearInput()
	UpdateFilter(f catalog.Filter)
	Term() string
	Filter() catalog.Filter
	Snapshot() state.Snapshot
	Subscribe() (<-chan state.Snapshot, func())
	Search(ctx context.Context) state.Lifecycle
	Retry(ctx context.Context) state.Lifecycle
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	Searcher Searcher
	Logger   *slog.Logger

	ThemeName string
	// PrefsPath is where theme and filter changes are saved. Empty disables
	// saving.
	PrefsPath string
	// LogPath is the diagnostic log shown by the log view.
	LogPath string
	// Query pre-fills the search bar and is searched on start.
	Query string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	searcher     Searcher
	logger       *slog.Logger
	prefsPath    string
	logPath      string
	initialQuery string
	keys         keyMap

	// UI state
	theme       Theme
	currentView View
	focus       focusArea
	width       int
	height      int
	ready       bool
	showHelp    bool

	input   textinput.Model
	spinner spinner.Model

	// Data state
	snapshot    state.Snapshot
	updates     <-chan state.Snapshot
	unsubscribe func()

	// Results state
	selected       int
	gridOffset     int
	flipped        map[string]bool
	detailViewport viewport.Model

	// Log state
	logViewport viewport.Model
	logLines    []string
	logErr      error
	logFollow   bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	query := strings.TrimSpace(opts.Query)
	if query != "" {
		opts.Searcher.UpdateInput(query)
	}

	input := textinput.New()
	input.Placeholder = "Search books"
	input.Prompt = ""
	input.CharLimit = 256
	input.SetValue(opts.Searcher.Term())
	input.Focus()

	updates, unsubscribe := opts.Searcher.Subscribe()

	return Model{
		ctx:          ctx,
		searcher:     opts.Searcher,
		logger:       logger.With("component", "ui"),
		prefsPath:    opts.PrefsPath,
		logPath:      opts.LogPath,
		initialQuery: query,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		currentView:  ViewSearch,
		focus:        focusInput,
		input:        input,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		snapshot:     opts.Searcher.Snapshot(),
		updates:      updates,
		unsubscribe:  unsubscribe,
		flipped:      make(map[string]bool),
		logFollow:    true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		waitForSnapshot(m.updates),
	}
	if m.initialQuery != "" {
		cmds = append(cmds, searchCmd(m.ctx, m.searcher, false), m.spinner.Tick)
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
		m.ready = true
		m.resize()
		return m, nil

	case snapshotMsg:
		cmd := m.applySnapshot(state.Snapshot(msg))
		return m, tea.Batch(cmd, waitForSnapshot(m.updates))

	case searchDoneMsg:
		return m, m.applySnapshot(state.Snapshot(msg))

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logTailMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil

	case logTickMsg:
		if m.currentView != ViewLogs || !m.logFollow {
			return m, nil
		}
		return m, tea.Batch(readLogCmd(m.logPath), logTickCmd())
	}

	if m.focus == focusInput && m.currentView == ViewSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.currentView == ViewLogs {
		return m.handleLogsKey(msg)
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleResultsKey(msg)
}

// handleInputKey processes keys while the search bar has focus. Printable
// keys go to the text input.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.searcher.Term() == "" {
			return m, nil
		}
		m.focusOn(focusResults)
		return m, tea.Batch(searchCmd(m.ctx, m.searcher, false), m.spinner.Tick)

	case key.Matches(msg, m.keys.ClearInput):
		m.input.SetValue("")
		m.searcher.ClearInput()
		return m, nil

	case key.Matches(msg, m.keys.InputFilter):
		m.cycleFilter()
		return m, nil

	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Escape):
		m.focusOn(focusResults)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.searcher.UpdateInput(m.input.Value())
	return m, cmd
}

// handleResultsKey processes keys while the results area has focus.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()

	case key.Matches(msg, m.keys.CycleFilter), key.Matches(msg, m.keys.InputFilter):
		m.cycleFilter()

	case key.Matches(msg, m.keys.FocusSearch), key.Matches(msg, m.keys.Tab):
		m.focusOn(focusInput)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Retry):
		return m, tea.Batch(searchCmd(m.ctx, m.searcher, true), m.spinner.Tick)

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		m.logFollow = true
		return m, tea.Batch(readLogCmd(m.logPath), logTickCmd())

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-m.gridColumns())
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(m.gridColumns())
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.selectEntry(0)
	case key.Matches(msg, m.keys.Bottom):
		m.selectEntry(len(m.entries()) - 1)

	case key.Matches(msg, m.keys.ToggleCard):
		m.toggleCard()

	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
	}
	return m, nil
}

// focusOn moves keyboard focus between the search bar and the results.
func (m *Model) focusOn(area focusArea) {
	m.focus = area
	if area == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.updateDetailViewport()
	m.updateLogViewport()
	m.savePrefs()
}

// cycleFilter switches to the next search filter and persists the choice.
// The running state is left alone; the new filter applies to the next search.
func (m *Model) cycleFilter() {
	m.searcher.UpdateFilter(m.searcher.Filter().Next())
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Filter: m.searcher.Filter().String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// applySnapshot installs snap unless it is older than the one on screen.
// Subscription and command results can arrive out of order.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	if !newerSnapshot(snap, m.snapshot) {
		return nil
	}
	if snap.Generation != m.snapshot.Generation {
		m.selected = 0
		m.gridOffset = 0
		m.flipped = make(map[string]bool)
	}
	m.snapshot = snap
	m.updateDetailViewport()
	if m.loading() {
		return m.spinner.Tick
	}
	return nil
}

func newerSnapshot(next, current state.Snapshot) bool {
	if next.Generation != current.Generation {
		return next.Generation > current.Generation
	}
	return !next.UpdatedAt.Before(current.UpdatedAt)
}

func (m Model) loading() bool {
	_, ok := m.snapshot.State.(state.Loading)
	return ok
}

// resize recomputes component sizes after a terminal resize.
func (m *Model) resize() {
	m.input.Width = max(m.width-searchBarReserve(), 10)
	m.updateDetailViewport()
	m.updateLogViewport()
	m.ensureVisible()
}

// contentHeight is the height of the area between the search bar and the
// command bar.
func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderResults()
	}
}

// Close releases the lifecycle subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Messages

type snapshotMsg state.Snapshot

type searchDoneMsg state.Snapshot

type logTickMsg time.Time

type logTailMsg struct {
	lines []string
	err   error
}

// Commands

func waitForSnapshot(updates <-chan state.Snapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func searchCmd(ctx context.Context, s Searcher, retry bool) tea.Cmd {
	return func() tea.Msg {
		if retry {
			s.Retry(ctx)
		} else {
			s.Search(ctx)
		}
		return searchDoneMsg(s.Snapshot())
	}
}

func logTickCmd() tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
