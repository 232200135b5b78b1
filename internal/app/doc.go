// Package app provides the orchestration layer for the pokedex.
//
// # Overview
//
// This package wires together configuration, the PokeAPI client, the catalog
// store, the detail hydrator, sound and the UI. It is the composition root
// for the TUI and supplies the same Services to the CLI subcommands and the
// HTTP server.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> OpenLogFile()        slog text handler, session id
//	       ├─────> NewServices()        client, store, hydrator, metrics
//	       ├─────> prefs.Load()         theme and sound preference
//	       ├─────> StartLoader()        listing fetch after the startup delay
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Loader goroutine:
//	┌─────────────────────────────────────────┐
//	│ wait StartupDelay (default 1s)          │
//	│  ├─> FetchListing(limit)                │
//	│  └─> store.Load() / store.LoadFailed()  │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Log file cannot be created
//   - API base URL cannot be parsed
//
// Recoverable errors (logged, recorded on the store):
//   - Listing fetch failure, leaving an empty collection
//   - Malformed prefs file, falling back to defaults
//
// The TUI writes its log to the configured log file since it owns the
// terminal.
package app
