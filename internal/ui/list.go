package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/catalog"
)

// cardGlyphs mark each card state in the list.
var cardGlyphs = map[catalog.CardState]string{
	catalog.Collapsed: "○",
	catalog.Revealing: "◌",
	catalog.Revealed:  "●",
}

// syncSelection keeps the selection on the same entity id when the visible
// set changes, clamping when that entity is filtered out.
func (m *Model) syncSelection() {
	if len(m.visible) == 0 {
		m.selectedRow = 0
		m.listOffset = 0
		return
	}
	if m.selectedID > 0 {
		for i, e := range m.visible {
			if e.ID == m.selectedID {
				m.selectedRow = i
				m.ensureVisible()
				return
			}
		}
	}
	m.selectedRow = min(max(m.selectedRow, 0), len(m.visible)-1)
	m.selectedID = m.visible[m.selectedRow].ID
	m.ensureVisible()
}

// selectRow moves the selection to row, clamped.
func (m *Model) selectRow(row int) {
	if len(m.visible) == 0 {
		return
	}
	row = min(max(row, 0), len(m.visible)-1)
	m.selectedRow = row
	m.selectedID = m.visible[row].ID
	m.ensureVisible()
	m.updateCardViewport()
}

// moveSelection moves by delta rows and reports whether the selection moved.
func (m *Model) moveSelection(delta int) bool {
	before := m.selectedRow
	m.selectRow(m.selectedRow + delta)
	return m.selectedRow != before
}

func (m Model) selectedEntity() (catalog.Entity, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.visible) {
		return catalog.Entity{}, false
	}
	return m.visible[m.selectedRow], true
}

// contentHeight is the space below the header and command bar.
func (m Model) contentHeight() int {
	return max(m.height-2, 3)
}

// listRows is the number of entries the list pane shows at once.
func (m Model) listRows() int {
	return max(m.contentHeight()-2, 1)
}

func (m *Model) ensureVisible() {
	rows := m.listRows()
	if m.selectedRow < m.listOffset {
		m.listOffset = m.selectedRow
	}
	if m.selectedRow >= m.listOffset+rows {
		m.listOffset = m.selectedRow - rows + 1
	}
	m.listOffset = max(min(m.listOffset, len(m.visible)-rows), 0)
}

// paneWidths splits the width between list and card.
func (m Model) paneWidths() (list, card int) {
	if m.width >= LayoutExtraWideWidth {
		list = m.width * 30 / 100
	} else {
		list = m.width * 40 / 100
	}
	list = max(list, listMinWidth)
	card = max(m.width-list, 0)
	return list, card
}

// renderCatalog renders the list and card panes side by side.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	if m.snapshot.Loading {
		msg := styles.WarningText.Render("Loading pokedex…")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}
	if len(m.snapshot.Entities) == 0 {
		msg := styles.MutedText.Render("The pokedex is empty")
		if m.snapshot.LastError != nil {
			msg = styles.DangerText.Render("Listing unavailable") + "\n" +
				styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), m.width-4))
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	listWidth, cardWidth := m.paneWidths()

	listFocused := !m.searching
	listBg := m.theme.SurfaceAlt
	if listFocused {
		listBg = m.theme.FocusBg
	}
	listContent := m.renderList(listWidth-2, listBg)
	listPane := m.renderTitledBox(m.listTitle(), listContent, listWidth, height, listFocused)

	cardTitle := "Card"
	if e, ok := m.selectedEntity(); ok {
		cardTitle = "#" + e.DisplayID()
	}
	cardPane := m.renderTitledBox(cardTitle, m.cardViewport.View(), cardWidth, height, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, cardPane)
}

func (m Model) listTitle() string {
	total := len(m.snapshot.Entities)
	if m.snapshot.SearchTerm == "" {
		return fmt.Sprintf("Pokedex (%d)", total)
	}
	return fmt.Sprintf("Pokedex (%d/%d)", len(m.visible), total)
}

// renderList renders the visible window of entries.
func (m Model) renderList(width int, paneBg string) string {
	if len(m.visible) == 0 {
		bg := NewBgStyle(paneBg)
		return bg.Render(fmt.Sprintf("No match for %q", m.snapshot.SearchTerm), m.theme.Styles().MutedText)
	}

	end := min(m.listOffset+m.listRows(), len(m.visible))
	lines := make([]string, 0, end-m.listOffset)
	for i := m.listOffset; i < end; i++ {
		selected := i == m.selectedRow
		bgColor := paneBg
		if selected {
			bgColor = m.theme.SelectionBg
		}
		row := m.formatListRow(m.visible[i], width, bgColor, selected)
		lines = append(lines, NewBgStyle(bgColor).FillLine(row, width))
	}
	return strings.Join(lines, "\n")
}

// formatListRow formats "#001 ● Bulbasaur".
func (m Model) formatListRow(e catalog.Entity, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	idStr := "#" + e.DisplayID()
	glyph := cardGlyphs[e.Card()]
	nameWidth := max(width-len(idStr)-4, 6)

	idStyle, nameStyle := styles.MutedText, styles.Text
	glyphStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.CardColor(e.Card())))
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, nameStyle = sel, sel.Bold(true)
	}

	return bg.Render(idStr, idStyle) + bg.Space() +
		bg.Render(glyph, glyphStyle) + bg.Space() +
		bg.Render(truncate(displayName(e.Name), nameWidth), nameStyle)
}

// renderTitledBox renders content in a box with the title in the top border:
// ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))
	lines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	rows := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}
	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}
