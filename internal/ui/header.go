package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/catalog"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("pokedex", styles.Logo)}

	switch {
	case m.snapshot.Loading:
		parts = append(parts, bg.Render("Loading…", styles.WarningText.Bold(true)))
	case m.snapshot.LastError != nil:
		parts = append(parts, bg.Render(classifyLoadError(m.snapshot.LastError), styles.DangerText))
	default:
		revealed, hydrated := m.snapshot.Counts()
		total := len(m.snapshot.Entities)
		parts = append(parts, bg.Render("Entries:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", total), styles.Text))
		if m.snapshot.SearchTerm != "" {
			parts = append(parts, bg.Render("Showing:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(m.visible)), styles.AccentText))
		}
		if revealed > 0 {
			parts = append(parts, bg.Render("Revealed:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", revealed), styles.SuccessText))
		}
		if hydrated > 0 && !compact {
			parts = append(parts, bg.Render("Cached:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", hydrated), styles.InfoText))
		}
	}

	if m.scroller.Active() {
		arrow := "↓"
		if m.scroller.Direction() < 0 {
			arrow = "↑"
		}
		parts = append(parts, bg.Render(arrow+" scrolling", styles.AccentText))
	}
	if m.player.IntroPlaying() {
		parts = append(parts, bg.Render("♪ intro", styles.AccentText))
	}
	if m.player != nil && !m.player.Enabled() {
		parts = append(parts, bg.Render("muted", styles.FaintText))
	}
	if !compact && !m.lastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.lastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// classifyLoadError returns a short label for the listing failure.
func classifyLoadError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "API unreachable"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "API timeout"
	case strings.Contains(msg, "no such host"):
		return "API host unknown"
	case errors.Is(err, catalog.ErrListingFetchFailed):
		return "Listing unavailable"
	default:
		return "Error"
	}
}

// renderCommandBar renders the context-sensitive key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.searching {
		return styles.Header.Width(m.width).Render(m.searchInput.View())
	}

	type cmd struct{ key, desc string }
	var commands []cmd
	if !m.open {
		commands = []cmd{
			{"o", "Open"},
			{"m", "Intro"},
			{"S", "Sound"},
			{"?", "More"},
		}
	} else {
		commands = []cmd{
			{"enter", "Flip"},
			{"/", "Search"},
			{"j/k", "Navigate"},
			{"J/K", "Scroll"},
			{"s", "Stop"},
			{"g/G", "Ends"},
			{"o", "Close"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	if m.open && m.snapshot.SearchTerm != "" {
		segments = append(segments, bg.Render("/"+truncate(m.snapshot.SearchTerm, 18), styles.AccentText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderLid renders the closed pokedex.
func (m Model) renderLid() string {
	styles := m.theme.Styles()
	lid := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Lid)).
		Padding(1, 4).
		Align(lipgloss.Center)

	body := strings.Join([]string{
		styles.Logo.Render(pokedexLogo),
		"",
		styles.MutedText.Render("press o to open"),
	}, "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCommandBar(),
		lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, lid.Render(body)),
	)
}

const pokedexLogo = `  ___  ___  _  _____ ___  _____  __
 | _ \/ _ \| |/ / __|   \| __\ \/ /
 |  _/ (_) | ' <| _|| |) | _| >  <
 |_|  \___/|_|\_\___|___/|___/_/\_\`
