package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/prefs"
)

type stubDetails struct {
	calls int
	err   error
}

func (s *stubDetails) FetchDetail(_ context.Context, sourceURL string) (*pokeapi.PokemonDetail, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &pokeapi.PokemonDetail{
		Name:   sourceURL,
		Height: 7,
		Weight: 69,
		Stats: []pokeapi.StatEntry{
			{BaseStat: 45}, {BaseStat: 49}, {BaseStat: 49},
			{BaseStat: 65}, {BaseStat: 65}, {BaseStat: 45},
		},
		Types: []pokeapi.TypeSlot{{Slot: 1, Type: pokeapi.NamedResource{Name: "grass"}}},
	}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T, fetcher *stubDetails, names ...string) (Model, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore(catalog.DefaultImageTemplate, quietLogger())
	listing := make([]pokeapi.ListingEntry, len(names))
	for i, n := range names {
		listing[i] = pokeapi.ListingEntry{Name: n, URL: fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", i+1)}
	}
	store.Load(listing)

	m := New(Options{
		Store:     store,
		Hydrator:  &catalog.Hydrator{Fetcher: fetcher, Logger: quietLogger()},
		Logger:    quietLogger(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModel_LidStartsClosed(t *testing.T) {
	fetcher := &stubDetails{}
	m, store := newTestModel(t, fetcher, "bulbasaur")

	if m.open {
		t.Fatalf("open = true, want the lid closed")
	}
	m, cmd := updateCmd(t, m, enterKey)
	if cmd != nil {
		t.Fatalf("enter on closed lid returned a command")
	}
	if e, _ := store.Entity(1); e.Revealed {
		t.Fatalf("closed lid flipped a card")
	}
	if !strings.Contains(m.View(), "press o to open") {
		t.Fatalf("closed view missing hint")
	}

	m = update(t, m, runes("o"))
	if !m.open {
		t.Fatalf("open = false after o")
	}
	if !strings.Contains(m.View(), "Bulbasaur") {
		t.Fatalf("open view missing list row")
	}
}

func TestModel_FlipHydratesAndMerges(t *testing.T) {
	fetcher := &stubDetails{}
	m, store := newTestModel(t, fetcher, "bulbasaur", "ivysaur")
	m = update(t, m, runes("o"))

	m, cmd := updateCmd(t, m, enterKey)
	if cmd == nil {
		t.Fatalf("first flip returned no hydration command")
	}
	if e, _ := store.Entity(1); e.Card() != catalog.Revealing {
		t.Fatalf("card = %s, want revealing", e.Card())
	}
	if !strings.Contains(m.View(), "Loading…") {
		t.Fatalf("revealing card does not show Loading…")
	}

	msg := cmd()
	if _, ok := msg.(hydratedMsg); !ok {
		t.Fatalf("command produced %T, want hydratedMsg", msg)
	}
	m = update(t, m, msg)

	e, _ := store.Entity(1)
	if e.Card() != catalog.Revealed || !e.HasDetail() {
		t.Fatalf("entity = %+v, want revealed with detail", e)
	}
	if e.Stat(catalog.StatSpecialAttack) != 65 {
		t.Fatalf("special attack = %d, want 65", e.Stat(catalog.StatSpecialAttack))
	}
	if !strings.Contains(m.View(), "GRASS") {
		t.Fatalf("back face missing type chip")
	}

	// Flip closed and open again: the cached detail is reused.
	m, cmd = updateCmd(t, m, enterKey)
	if cmd != nil {
		t.Fatalf("hiding returned a command")
	}
	_, cmd = updateCmd(t, m, enterKey)
	if cmd != nil {
		t.Fatalf("re-reveal of a hydrated card returned a command")
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", fetcher.calls)
	}
}

func TestModel_FailedHydrationShowsEmptyPanel(t *testing.T) {
	fetcher := &stubDetails{err: errors.New("boom")}
	m, store := newTestModel(t, fetcher, "bulbasaur")
	m = update(t, m, runes("o"))

	m, cmd := updateCmd(t, m, enterKey)
	m = update(t, m, cmd())

	e, _ := store.Entity(1)
	if e.IsLoadingDetail() || e.HasDetail() || !e.Revealed {
		t.Fatalf("entity = %+v, want revealed, not loading, no detail", e)
	}
	if !strings.Contains(m.View(), "No stats yet") {
		t.Fatalf("failed card does not show the empty panel")
	}
}

func TestModel_LiveSearchKeepsSelection(t *testing.T) {
	m, store := newTestModel(t, &stubDetails{}, "bulbasaur", "ivysaur", "venusaur", "charmander")
	m = update(t, m, runes("o"))
	m = update(t, m, runes("j"))
	if e, _ := m.selectedEntity(); e.Name != "ivysaur" {
		t.Fatalf("selected = %q, want ivysaur", e.Name)
	}

	m = update(t, m, runes("/"))
	if !m.searching {
		t.Fatalf("searching = false after /")
	}
	for _, r := range "saur" {
		m = update(t, m, runes(string(r)))
	}
	if got := store.SearchTerm(); got != "saur" {
		t.Fatalf("store term = %q, want saur", got)
	}
	if len(m.visible) != 3 {
		t.Fatalf("visible = %d, want 3", len(m.visible))
	}
	if e, _ := m.selectedEntity(); e.Name != "ivysaur" {
		t.Fatalf("selected after filter = %q, want ivysaur", e.Name)
	}

	m = update(t, m, enterKey)
	if m.searching {
		t.Fatalf("searching = true after enter")
	}
	if got := store.SearchTerm(); got != "saur" {
		t.Fatalf("enter changed term to %q", got)
	}

	m = update(t, m, escKey)
	if got := store.SearchTerm(); got != "" {
		t.Fatalf("esc left term %q", got)
	}
	if len(m.visible) != 4 {
		t.Fatalf("visible = %d, want 4", len(m.visible))
	}
}

func TestModel_SearchByNumber(t *testing.T) {
	m, _ := newTestModel(t, &stubDetails{}, "bulbasaur", "ivysaur", "venusaur")
	m = update(t, m, runes("o"))
	m = update(t, m, runes("/"))
	m = update(t, m, runes("3"))

	if len(m.visible) != 1 || m.visible[0].Name != "venusaur" {
		t.Fatalf("visible = %+v, want venusaur", m.visible)
	}
	if e, _ := m.selectedEntity(); e.ID != 3 {
		t.Fatalf("selected id = %d, want clamp to 3", e.ID)
	}
}

func TestModel_JumpToEnds(t *testing.T) {
	m, _ := newTestModel(t, &stubDetails{}, "a", "b", "c", "d")
	m = update(t, m, runes("o"))

	m = update(t, m, runes("G"))
	if m.selectedRow != 3 {
		t.Fatalf("selectedRow = %d, want 3", m.selectedRow)
	}
	m = update(t, m, runes("g"))
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow = %d, want 0", m.selectedRow)
	}
}

func TestModel_ScrollAssistMovesAndStops(t *testing.T) {
	names := make([]string, 50)
	for i := range names {
		names[i] = fmt.Sprintf("mon-%d", i+1)
	}
	m, _ := newTestModel(t, &stubDetails{}, names...)
	m = update(t, m, runes("o"))

	m, cmd := updateCmd(t, m, runes("J"))
	if cmd == nil || !m.scroller.Active() {
		t.Fatalf("J did not start scrolling")
	}
	gen := m.scroller.gen
	for i := 0; i < 5; i++ {
		m = update(t, m, scrollTickMsg{gen: gen})
	}
	if m.selectedRow == 0 {
		t.Fatalf("selection did not move while scrolling")
	}

	m = update(t, m, runes("s"))
	if m.scroller.Active() {
		t.Fatalf("s did not stop scrolling")
	}
	row := m.selectedRow
	m = update(t, m, scrollTickMsg{gen: gen})
	if m.selectedRow != row {
		t.Fatalf("stale tick moved selection")
	}
}

func TestModel_ScrollStopsAtBoundary(t *testing.T) {
	m, _ := newTestModel(t, &stubDetails{}, "a", "b")
	m = update(t, m, runes("o"))
	m = update(t, m, runes("G"))

	m = update(t, m, runes("J"))
	for i := 0; i < 10 && m.scroller.Active(); i++ {
		m = update(t, m, scrollTickMsg{gen: m.scroller.gen})
	}
	if m.scroller.Active() {
		t.Fatalf("scroller still active at the last entry")
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	m, _ := newTestModel(t, &stubDetails{}, "bulbasaur")
	start := m.theme.Name

	m = update(t, m, runes("T"))
	if m.theme.Name == start {
		t.Fatalf("theme did not change")
	}

	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if saved.Theme != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", saved.Theme, m.theme.Name)
	}
}

func TestModel_HelpOverlayClosesOnAnyKey(t *testing.T) {
	m, _ := newTestModel(t, &stubDetails{}, "bulbasaur")
	m = update(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = update(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("help overlay still shown")
	}
}

func TestModel_LoadingAndErrorStates(t *testing.T) {
	store := catalog.NewStore("", quietLogger())
	m := New(Options{Store: store, Logger: quietLogger(), StartOpen: true, PrefsPath: filepath.Join(t.TempDir(), "p.toml")})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(m.View(), "Loading pokedex") {
		t.Fatalf("loading view missing")
	}

	store.LoadFailed(errors.New("dial tcp: connection refused"))
	m = update(t, m, snapshotMsg(store.Snapshot()))
	view := m.View()
	if !strings.Contains(view, "Listing unavailable") || !strings.Contains(view, "API unreachable") {
		t.Fatalf("error view = %q", view)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t, &stubDetails{}, "bulbasaur")
	_, cmd := updateCmd(t, m, runes("e"))
	if cmd == nil {
		t.Fatalf("e returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("e did not quit")
	}
}
