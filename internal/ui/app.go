package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/metrics"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/sound"
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Store    *catalog.Store
	Hydrator *catalog.Hydrator
	Metrics  *metrics.Recorder
	// Player may be nil when sound is disabled in the config.
	Player    *sound.Player
	Logger    *slog.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	// RefreshEvery is how often the store is re-read; zero uses DefaultUIInterval.
	RefreshEvery time.Duration
	// StartOpen skips the closed lid.
	StartOpen bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	store        *catalog.Store
	hydrator     *catalog.Hydrator
	metrics      *metrics.Recorder
	player       *sound.Player
	logger       *slog.Logger
	prefs        prefs.Prefs
	prefsPath    string
	refreshEvery time.Duration
	keys         keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	open     bool
	showHelp bool
	help     help.Model

	// Data state
	snapshot    catalog.Snapshot
	visible     []catalog.Entity
	lastUpdated time.Time

	// List state
	selectedID  int
	selectedRow int
	listOffset  int
	scroller    Scroller

	// Search
	searching   bool
	searchInput textinput.Model

	// Card
	cardViewport viewport.Model
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
	hydrator := opts.Hydrator
	if hydrator == nil {
		hydrator = &catalog.Hydrator{Logger: logger}
	}
	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}
	userPrefs := opts.Prefs
	if userPrefs.Theme == "" {
		userPrefs = prefs.Default()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "name or number"
	input.CharLimit = 64

	m := Model{
		ctx:          ctx,
		store:        opts.Store,
		hydrator:     hydrator,
		metrics:      opts.Metrics,
		player:       opts.Player,
		logger:       logger,
		prefs:        userPrefs,
		prefsPath:    prefsPath,
		refreshEvery: refresh,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(userPrefs.Theme),
		open:         opts.StartOpen,
		help:         help.New(),
		searchInput:  input,
	}
	m.help.ShowAll = true
	if m.store != nil {
		m.applySnapshot(m.store.Snapshot())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refreshEvery)}
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
		if !m.ready {
			m.cardViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resizeCard()
		m.syncSelection()
		m.updateCardViewport()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.refreshEvery))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(catalog.Snapshot(msg))
		return m, nil

	case hydratedMsg:
		if m.store != nil {
			m.store.Apply(catalog.HydrationResult(msg))
			m.refresh()
		}
		return m, nil

	case scrollTickMsg:
		rows, cmd := m.scroller.Handle(msg)
		if rows != 0 {
			if !m.moveSelection(rows) {
				m.scroller.Stop()
				return m, nil
			}
		}
		return m, cmd
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
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
	if !m.open {
		return m.renderLid()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.scroller.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateCardViewport()
		return m, nil

	case key.Matches(msg, m.keys.Sound):
		if m.player != nil {
			m.player.SetEnabled(!m.player.Enabled())
			m.prefs.Sound = m.player.Enabled()
			m.savePrefs()
		}
		return m, nil

	case key.Matches(msg, m.keys.Intro):
		playing := m.player.IntroToggle()
		m.logger.Debug("intro toggled", "playing", playing)
		return m, nil

	case key.Matches(msg, m.keys.ToggleLid):
		m.open = !m.open
		m.scroller.Stop()
		m.player.Play(sound.CueButton)
		return m, nil
	}

	if !m.open {
		return m, nil
	}
	return m.handleCatalogKey(msg)
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.scroller.Stop()
		m.searching = true
		m.searchInput.SetValue(m.snapshot.SearchTerm)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Escape):
		m.scroller.Stop()
		if m.snapshot.SearchTerm != "" {
			m.setSearchTerm("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Flip):
		return m, m.toggleSelected()

	case key.Matches(msg, m.keys.ScrollDown):
		m.player.Play(sound.CueExclamation)
		return m, m.scroller.Start(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.player.Play(sound.CueExclamation)
		return m, m.scroller.Start(-1)

	case key.Matches(msg, m.keys.ScrollStop):
		m.scroller.Stop()
		return m, nil

	case key.Matches(msg, m.keys.CardDown):
		m.cardViewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.CardUp):
		m.cardViewport.HalfViewUp()
		return m, nil
	}

	if len(m.visible) == 0 {
		return m, nil
	}

	half := max(m.listRows()/2, 1)
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveSelection(half)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveSelection(-half)
	case key.Matches(msg, m.keys.Top):
		m.scroller.Stop()
		m.player.Play(sound.CueExclamation)
		m.selectRow(0)
	case key.Matches(msg, m.keys.Bottom):
		m.scroller.Stop()
		m.player.Play(sound.CueExclamation)
		m.selectRow(len(m.visible) - 1)
	}
	return m, nil
}

// toggleSelected flips the selected card and returns the hydration command
// when the store asks for one.
func (m *Model) toggleSelected() tea.Cmd {
	entity, ok := m.selectedEntity()
	if !ok || m.store == nil {
		return nil
	}
	req, fetch := m.store.ToggleReveal(entity.ID)
	m.metrics.ObserveReveal()
	m.player.Play(sound.CueExclamation)
	m.refresh()
	if !fetch {
		return nil
	}
	return hydrateCmd(m.ctx, m.hydrator, req)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs", "error", err)
	}
}

// refresh re-reads the store after a local mutation.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.applySnapshot(m.store.Snapshot())
}

func (m *Model) applySnapshot(snap catalog.Snapshot) {
	m.snapshot = snap
	m.visible = snap.Filtered()
	m.lastUpdated = time.Now()
	m.syncSelection()
	m.updateCardViewport()
}

func (m *Model) setSearchTerm(term string) {
	if m.store == nil {
		return
	}
	m.store.SetSearchTerm(term)
	m.refresh()
}

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderCatalog())
	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg catalog.Snapshot

type hydratedMsg catalog.HydrationResult

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func hydrateCmd(ctx context.Context, h *catalog.Hydrator, req catalog.HydrationRequest) tea.Cmd {
	return func() tea.Msg {
		return hydratedMsg(h.Hydrate(ctx, req))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
