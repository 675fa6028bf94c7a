package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/loupe/internal/prefs"
	"github.com/five82/loupe/internal/render"
	"github.com/five82/loupe/internal/source"
	"github.com/five82/loupe/internal/state"
	"github.com/five82/loupe/internal/watch"
)

// pane identifies which pane receives navigation keys.
type pane int

const (
	paneFiles pane = iota
	paneViewer
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Selector  *source.Selector
	PollTick  time.Duration
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	selector  *source.Selector
	store     *state.Store
	log       zerolog.Logger
	keys      keyMap
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme    Theme
	palette  render.Palette
	width    int
	height   int
	ready    bool
	focus    pane
	showHelp bool

	// File list
	snapshot state.Snapshot
	files    []watch.File
	selected int

	// Viewer
	doc        *source.Document
	loading    string
	status     string
	statusErr  bool
	formatJSON bool
	follow     bool
	viewport   viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	var store *state.Store
	if opts.Selector != nil {
		store = opts.Selector.Store()
	}

	theme := GetTheme(opts.Prefs.Theme)
	return Model{
		selector:   opts.Selector,
		store:      store,
		log:        opts.Logger,
		keys:       DefaultKeyMap(),
		prefs:      opts.Prefs,
		prefsPath:  opts.PrefsPath,
		pollTick:   pollTick,
		theme:      theme,
		palette:    theme.Palette(),
		formatJSON: opts.Prefs.FormatJSON,
		viewport:   viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
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
		m.viewport.Width = m.viewerWidth()
		m.viewport.Height = paneHeight(m.height)
		m.refreshViewport(false)
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		cmd := m.applySnapshot(state.Snapshot(msg))
		return m, cmd

	case docLoadedMsg:
		m.handleDocLoaded(msg)
		return m, nil

	case projectMsg:
		return m.handleProject(msg)
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

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFiles(), m.renderViewer())
	return strings.Join([]string{m.renderHeader(), body, m.renderFooter()}, "\n")
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.palette = m.theme.Palette()
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.refreshViewport(false)
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focus == paneFiles {
			m.focus = paneViewer
		} else {
			m.focus = paneFiles
		}
		return m, nil

	case key.Matches(msg, m.keys.NextProject):
		return m, m.cycleProject(1)

	case key.Matches(msg, m.keys.PrevProject):
		return m, m.cycleProject(-1)

	case key.Matches(msg, m.keys.ToggleJSON):
		m.formatJSON = !m.formatJSON
		m.prefs.FormatJSON = m.formatJSON
		m.savePrefs()
		m.refreshViewport(false)
		return m, nil

	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.viewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.doc == nil {
			return m, nil
		}
		cmd := m.open(m.doc.Path)
		return m, cmd
	}

	if m.focus == paneViewer {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m.handleFilesKey(msg)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.follow && m.doc != nil && m.loading == "" {
		changed, err := m.doc.Refresh()
		switch {
		case err != nil:
			m.setStatus(err.Error(), true)
		case changed:
			m.refreshViewport(true)
		}
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m *Model) handleDocLoaded(msg docLoadedMsg) {
	if msg.path != m.loading {
		// A newer open superseded this one.
		return
	}
	m.loading = ""
	if msg.err != nil {
		m.doc = nil
		m.setStatus(msg.err.Error(), true)
		m.refreshViewport(false)
		return
	}
	m.doc = msg.doc
	m.setStatus("", false)
	if m.doc.Clipped {
		m.setStatus("showing the tail of a large file", false)
	}
	m.viewport.GotoTop()
	m.refreshViewport(m.follow)
}

func (m Model) handleProject(msg projectMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}
	m.prefs.LastProject = msg.name
	m.savePrefs()

	m.snapshot = state.Snapshot{}
	m.files = nil
	m.selected = 0
	m.doc = nil
	m.loading = ""
	m.setStatus("", false)
	m.refreshViewport(false)

	if m.store == nil {
		return m, nil
	}
	return m, fetchSnapshotCmd(m.store)
}

func (m *Model) cycleProject(step int) tea.Cmd {
	if m.selector == nil {
		return nil
	}
	projects := m.selector.Projects()
	if len(projects) == 0 {
		return nil
	}

	next := 0
	active := m.selector.Active()
	for i, p := range projects {
		if strings.EqualFold(p.Name, active) {
			next = (i + step + len(projects)) % len(projects)
			break
		}
	}
	return selectProjectCmd(m.selector, projects[next].Name)
}

// open starts loading path. Results for an older path are dropped.
func (m *Model) open(path string) tea.Cmd {
	if m.selector == nil || path == "" {
		return nil
	}
	m.loading = path
	return loadDocCmd(m.selector, path)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Msg("save prefs")
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type docLoadedMsg struct {
	path string
	doc  *source.Document
	err  error
}

type projectMsg struct {
	name string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchSnapshotCmd reads the store and refreshes file ages, so a file that
// keeps growing moves to the top of the list.
func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		snap := store.Snapshot()
		snap.Files = snap.Files.Restat()
		return snapshotMsg(snap)
	}
}

func loadDocCmd(sel *source.Selector, path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := sel.Load(path)
		return docLoadedMsg{path: path, doc: doc, err: err}
	}
}

func selectProjectCmd(sel *source.Selector, name string) tea.Cmd {
	return func() tea.Msg {
		return projectMsg{name: name, err: sel.Select(name)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
