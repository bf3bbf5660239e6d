package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/state"
)

// entries returns the entries of a successful search, or nil.
func (m Model) entries() []catalog.Entry {
	if s, ok := m.snapshot.State.(state.Success); ok {
		return s.Response.Entries
	}
	return nil
}

// selectedEntry returns the entry under the cursor.
func (m Model) selectedEntry() (catalog.Entry, bool) {
	entries := m.entries()
	if m.selected < 0 || m.selected >= len(entries) {
		return catalog.Entry{}, false
	}
	return entries[m.selected], true
}

// paneWidths splits the screen between the card grid and the detail pane.
// The detail pane is hidden on narrow terminals.
func (m Model) paneWidths() (grid, detail int) {
	switch {
	case m.width < LayoutCompactWidth:
		return m.width, 0
	case m.width >= LayoutExtraWideWidth:
		grid = m.width * 65 / 100
	default:
		grid = m.width * 55 / 100
	}
	return grid, m.width - grid
}

// gridColumns is the number of cards per grid row.
func (m Model) gridColumns() int {
	grid, _ := m.paneWidths()
	inner := grid - 2
	return max(1, (inner+cardGap)/(CardWidth+cardGap))
}

// visibleGridRows is how many card rows fit in the content area.
func (m Model) visibleGridRows() int {
	return max(1, (m.contentHeight()-2)/CardHeight)
}

func (m *Model) moveSelection(delta int) {
	m.selectEntry(m.selected + delta)
}

func (m *Model) selectEntry(idx int) {
	n := len(m.entries())
	if n == 0 {
		return
	}
	m.selected = clamp(idx, 0, n-1)
	m.ensureVisible()
	m.updateDetailViewport()
}

// ensureVisible scrolls the grid so the selected card's row is on screen.
func (m *Model) ensureVisible() {
	cols := m.gridColumns()
	rows := m.visibleGridRows()
	row := m.selected / cols
	switch {
	case row < m.gridOffset:
		m.gridOffset = row
	case row >= m.gridOffset+rows:
		m.gridOffset = row - rows + 1
	}
}

// toggleCard flips the selected card between its cover face and its data
// face.
func (m *Model) toggleCard() {
	entry, ok := m.selectedEntry()
	if !ok {
		return
	}
	m.flipped[entry.ID] = !m.flipped[entry.ID]
}

// showsData reports whether a card shows its data face. Cards without a cover
// show data unless flipped.
func (m Model) showsData(entry catalog.Entry) bool {
	return !entry.Volume.HasCover() != m.flipped[entry.ID]
}

// renderResults renders the content area for the current lifecycle state.
func (m Model) renderResults() string {
	height := m.contentHeight()
	focused := m.focus == focusResults

	switch s := m.snapshot.State.(type) {
	case state.Loading:
		return m.renderMessageBox("Results", m.renderLoading(s), height, focused)
	case state.Failure:
		return m.renderMessageBox("Results", m.renderFailure(s), height, focused)
	case state.Success:
		if len(s.Response.Entries) == 0 {
			return m.renderMessageBox("Results", m.renderEmpty(s), height, focused)
		}
		return m.renderGridAndDetail(s, height, focused)
	default:
		return m.renderMessageBox("Results", m.renderIdle(), height, focused)
	}
}

func (m Model) renderIdle() string {
	styles := m.theme.Styles()
	return lipgloss.JoinVertical(lipgloss.Center,
		styles.AccentText.Bold(true).Render("What's the book?"),
		"",
		styles.MutedText.Render(fmt.Sprintf("Searching by %s. Type and press enter.", m.searcher.Filter().Label())),
	)
}

func (m Model) renderLoading(s state.Loading) string {
	styles := m.theme.Styles()
	return m.spinner.View() + " " + styles.Text.Render("Searching "+s.Request.Query())
}

func (m Model) renderFailure(s state.Failure) string {
	styles := m.theme.Styles()
	retry := styles.StateStyle("failure").Bold(true).Render("r  Retry")
	return lipgloss.JoinVertical(lipgloss.Center,
		styles.DangerText.Render("Loading failed"),
		styles.MutedText.Render(s.Request.Query()),
		"",
		retry,
	)
}

func (m Model) renderEmpty(s state.Success) string {
	styles := m.theme.Styles()
	return lipgloss.JoinVertical(lipgloss.Center,
		styles.WarningText.Render("No books found"),
		styles.MutedText.Render(s.Request.Query()),
	)
}

// renderMessageBox centers msg in a full-width titled box.
func (m Model) renderMessageBox(title, msg string, height int, focused bool) string {
	bg := m.theme.SurfaceAlt
	if focused {
		bg = m.theme.FocusBg
	}
	inner := lipgloss.Place(m.width-2, max(height-2, 1), lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(bg)))
	return m.renderTitledBox(title, inner, m.width, height, focused)
}

func (m Model) renderGridAndDetail(s state.Success, height int, focused bool) string {
	gridWidth, detailWidth := m.paneWidths()

	title := fmt.Sprintf("Results %d of %d", len(s.Response.Entries), s.Response.ResultCount)
	grid := m.renderTitledBox(title, m.renderGrid(s.Response.Entries), gridWidth, height, focused)
	if detailWidth == 0 {
		return grid
	}
	detail := m.renderTitledBox("Details", m.detailViewport.View(), detailWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, detail)
}

// renderGrid renders the visible rows of cards.
func (m Model) renderGrid(entries []catalog.Entry) string {
	cols := m.gridColumns()
	first := m.gridOffset * cols
	last := min(len(entries), first+m.visibleGridRows()*cols)

	var rows []string
	for start := first; start < last; start += cols {
		end := min(start+cols, last)
		cards := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, m.renderCard(entries[i], i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

// renderCard renders one entry as a fixed-size card.
func (m Model) renderCard(entry catalog.Entry, selected bool) string {
	styles := m.theme.Styles()
	textWidth := CardWidth - 4
	vol := entry.Volume

	var lines []string
	if m.showsData(entry) {
		lines = append(lines, styles.Text.Bold(true).Render(truncate(vol.Title, textWidth)))
		lines = append(lines, styles.MutedText.Render(truncate(vol.AuthorLine(), textWidth)))
		lines = append(lines, styles.FaintText.Render(truncate(vol.PublishedDate, textWidth)))
		for _, l := range wrapLines(vol.Description, textWidth, CardHeight-5) {
			lines = append(lines, styles.Text.Render(l))
		}
	} else {
		for _, l := range wrapLines(vol.Title, textWidth, 2) {
			lines = append(lines, styles.Text.Bold(true).Render(l))
		}
		lines = append(lines, styles.MutedText.Render(truncate(vol.AuthorLine(), textWidth)))
		lines = append(lines, "")
		lines = append(lines, styles.InfoText.Render("▣ cover"))
	}

	border := m.theme.Border
	if selected {
		border = m.theme.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(CardWidth-2).
		Height(CardHeight-2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// updateDetailViewport sizes the detail viewport and fills it with the
// selected entry.
func (m *Model) updateDetailViewport() {
	_, detailWidth := m.paneWidths()
	width := max(detailWidth-4, 1)
	height := max(m.contentHeight()-2, 1)
	if m.detailViewport.Width == 0 {
		m.detailViewport = viewport.New(width, height)
	}
	m.detailViewport.Width = width
	m.detailViewport.Height = height

	entry, ok := m.selectedEntry()
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(entry, width))
	m.detailViewport.GotoTop()
}

// renderDetailContent renders every field of entry for the detail pane.
func (m Model) renderDetailContent(entry catalog.Entry, width int) string {
	styles := m.theme.Styles()
	vol := entry.Volume
	wrap := lipgloss.NewStyle().Width(width)

	cover := "none"
	if vol.HasCover() {
		cover = vol.Thumbnail()
	}

	var b strings.Builder
	b.WriteString(wrap.Inherit(styles.Text.Bold(true)).Render(vol.Title))
	b.WriteString("\n")
	b.WriteString(wrap.Inherit(styles.MutedText).Render(vol.AuthorLine()))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Published  "))
	b.WriteString(styles.Text.Render(vol.PublishedDate))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Cover      "))
	b.WriteString(styles.InfoText.Render(truncate(cover, max(width-11, 4))))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("ID         "))
	b.WriteString(styles.MutedText.Render(entry.ID))
	b.WriteString("\n\n")
	b.WriteString(wrap.Inherit(styles.Text).Render(vol.Description))
	return b.String()
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. Focused boxes use the focus border and
// background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
