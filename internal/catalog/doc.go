// Package catalog holds the pokedex entity collection and its detail
// hydration.
//
// # Overview
//
// A Store owns the ordered entity collection built from the listing fetch
// and the current search term. Views are derived on read with Filter, so a
// change to either input is visible on the next Snapshot with no cached
// state to invalidate.
//
// # Reveal and Hydration
//
// Each entity carries an independent reveal flag and a HydrationState:
//
//	ToggleReveal(id)        Absent ──reveal──> Pending
//	Apply(result ok)        Pending ─────────> Loaded   (terminal)
//	Apply(result failed)    Pending ─────────> Absent   (next reveal retries)
//
// ToggleReveal marks the entity Pending inside the same lock that flips the
// reveal flag, so callers see the loading state immediately and a second
// reveal cannot issue a duplicate fetch. Results are merged by id whenever
// they arrive; hiding a card does not cancel its fetch.
//
// # Hydrator
//
// Hydrator fetches a detail payload through a pokeapi.DetailFetcher, maps the
// first six stats positionally onto StatOrder and waits Latency before
// handing the result back. The TUI runs it inside a tea.Cmd and the HTTP API
// inside a goroutine; both end in Store.Apply.
//
// # Errors
//
// ErrListingFetchFailed and ErrDetailFetchFailed are logged and degrade the
// view (empty collection, empty stat panel). Nothing else is surfaced.
package catalog
