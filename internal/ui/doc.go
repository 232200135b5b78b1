// Package ui provides the Bubble Tea TUI for the pokedex.
//
// # Layout
//
// The pokedex starts with its lid closed. Opening it ("o") shows a header
// with collection counts, a command bar with context hints, and two panes:
//
//   - List pane: one row per visible entry, "#001 ● Bulbasaur", where the
//     glyph tracks the card state (collapsed, revealing, revealed)
//   - Card pane: the selected entry's front face (name, number, artwork URL)
//     or back face (type chips, stat bars, height, weight, abilities)
//
// # Data Flow
//
// The model never fetches the listing itself. app.StartLoader populates the
// catalog.Store in the background and the model re-reads Store.Snapshot on a
// fixed tick. Flipping a card calls Store.ToggleReveal; when that asks for a
// hydration the model returns a tea.Cmd that runs the Hydrator and delivers
// the result back as a message, which is merged with Store.Apply.
//
// # Selection
//
// The selection follows the entity id, so live search keeps the same entry
// highlighted while it stays visible and clamps otherwise.
//
// # Scroll Assist
//
// "J" and "K" start an accelerating scroll (see Scroller); "s", the ends
// ("g"/"G") and reaching either boundary stop it.
//
// # Themes
//
// Themes cycle with "T" and persist through the prefs package, as does the
// sound toggle ("S").
package ui
