package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/catalog"
)

var statLabels = map[catalog.StatName]string{
	catalog.StatHP:             "HP",
	catalog.StatAttack:         "Attack",
	catalog.StatDefense:        "Defense",
	catalog.StatSpecialAttack:  "Sp. Atk",
	catalog.StatSpecialDefense: "Sp. Def",
	catalog.StatSpeed:          "Speed",
}

func (m *Model) resizeCard() {
	_, cardWidth := m.paneWidths()
	m.cardViewport.Width = max(cardWidth-4, 0)
	m.cardViewport.Height = max(m.contentHeight()-2, 0)
}

// updateCardViewport re-renders the selected card into the viewport,
// returning to the top when the selection changed.
func (m *Model) updateCardViewport() {
	if !m.ready {
		return
	}
	e, ok := m.selectedEntity()
	if !ok {
		m.cardViewport.SetContent("")
		return
	}
	m.cardViewport.SetContent(m.renderCardContent(e, m.cardViewport.Width))
	if m.cardViewport.PastBottom() {
		m.cardViewport.GotoTop()
	}
}

// renderCardContent renders the face matching the entity's card state.
func (m Model) renderCardContent(e catalog.Entity, width int) string {
	switch e.Card() {
	case catalog.Collapsed:
		return m.renderCardFront(e, width)
	case catalog.Revealing:
		return m.renderCardHeading(e) + "\n\n" + m.theme.Styles().WarningText.Render("Loading…")
	default:
		return m.renderCardBack(e, width)
	}
}

func (m Model) renderCardHeading(e catalog.Entity) string {
	styles := m.theme.Styles()
	return styles.Text.Bold(true).Render(displayName(e.Name)) + "  " +
		styles.MutedText.Render("#"+e.DisplayID())
}

func (m Model) renderCardFront(e catalog.Entity, width int) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(m.renderCardHeading(e))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("artwork"))
	b.WriteString("\n")
	b.WriteString(styles.InfoText.Render(truncate(e.ImageURL, width)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("enter to flip"))
	return b.String()
}

func (m Model) renderCardBack(e catalog.Entity, width int) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(m.renderCardHeading(e))
	b.WriteString("\n\n")

	if !e.HasDetail() {
		// A failed fetch leaves an empty stats panel; flipping again retries.
		b.WriteString(styles.MutedText.Render("No stats yet"))
		return b.String()
	}
	d := e.Detail

	if len(d.Categories) > 0 {
		chips := make([]string, 0, len(d.Categories))
		for _, c := range d.Categories {
			chips = append(chips, styles.TypeChip(c).Render(strings.ToUpper(c)))
		}
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n\n")
	}

	barWidth := max(width-lipgloss.Width("Sp. Def  255  "), 4)
	for _, name := range catalog.StatOrder {
		value := d.Stats.Get(name)
		b.WriteString(styles.MutedText.Render(padRight(statLabels[name], 9)))
		b.WriteString(styles.Text.Render(fmt.Sprintf("%3d", value)))
		b.WriteString("  ")
		b.WriteString(m.renderStatBar(value, barWidth))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderField("Height", formatHeight(d.Height)))
	b.WriteString(m.renderField("Weight", formatWeight(d.Weight)))
	b.WriteString(m.renderField("Base exp", fmt.Sprintf("%d", d.BaseExperience)))
	if len(d.Traits) > 0 {
		names := make([]string, 0, len(d.Traits))
		for _, t := range d.Traits {
			names = append(names, displayName(t))
		}
		b.WriteString(m.renderField("Abilities", truncate(strings.Join(names, ", "), max(width-11, 8))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderField(label, value string) string {
	styles := m.theme.Styles()
	return styles.MutedText.Render(padRight(label, 11)) + styles.Text.Render(value) + "\n"
}

// renderStatBar draws value on a 0..maxBaseStat scale.
func (m Model) renderStatBar(value, width int) string {
	filled := statBarFill(value, width)
	color := m.theme.Danger
	switch {
	case value >= 100:
		color = m.theme.Success
	case value >= 60:
		color = m.theme.Warning
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		m.theme.Styles().FaintText.Render(strings.Repeat("░", width-filled))
}

func statBarFill(value, width int) int {
	if width <= 0 || value <= 0 {
		return 0
	}
	filled := value * width / maxBaseStat
	if filled == 0 {
		filled = 1
	}
	return min(filled, width)
}
