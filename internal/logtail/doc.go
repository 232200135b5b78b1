// Package logtail reads the tail of the pokedex log file and styles it for
// the terminal.
//
// The TUI owns the screen, so it logs to a file. Read returns the last N
// lines of that file using a ring buffer, so memory stays proportional to N
// rather than the file size. A missing file is not an error.
//
// Lines are expected in the slog text format:
//
//	time=2026-01-02T15:04:05Z level=INFO msg="detail hydrated" session=… id=25
//
// Level extracts the level attribute, FilterLevel drops lines below a
// threshold, and Colorize highlights the level and dims attribute keys with
// lipgloss. Lines that do not parse are passed through unchanged.
package logtail
