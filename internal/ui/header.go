package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/state"
)

// renderHeader renders the top status line: logo, lifecycle badge and a
// summary of the current search.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	name := state.Name(m.snapshot.State)
	parts := []string{
		bg.Render("bookshelf", styles.Logo),
		styles.StateStyle(name).Render(strings.ToUpper(name)),
	}

	switch s := m.snapshot.State.(type) {
	case state.Loading:
		parts = append(parts, bg.Render(s.Request.Query(), styles.Text))
	case state.Success:
		parts = append(parts,
			bg.Render(s.Request.Query(), styles.Text),
			bg.Render("Results:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d of %d", len(s.Response.Entries), s.Response.ResultCount), styles.Text),
		)
	case state.Failure:
		parts = append(parts, bg.Render(s.Request.Query(), styles.DangerText))
	}

	if !m.snapshot.UpdatedAt.IsZero() && !m.loading() {
		parts = append(parts, bg.Render(m.snapshot.UpdatedAt.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// filterTabs renders the filter selector with the active filter highlighted.
func (m Model) filterTabs(bgColor string) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(bgColor)
	active := m.searcher.Filter()

	tabs := make([]string, 0, len(catalog.Filters()))
	for _, f := range catalog.Filters() {
		label := " " + f.Label() + " "
		if f == active {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
			continue
		}
		tabs = append(tabs, bg.Render(label, styles.MutedText))
	}
	return strings.Join(tabs, bg.Space())
}

// searchBarReserve is the width taken by everything in the search bar except
// the text input: borders, filter tabs and the gap after them.
func searchBarReserve() int {
	width := 2 + 2 + 1
	for i, f := range catalog.Filters() {
		if i > 0 {
			width++
		}
		width += lipgloss.Width(f.Label()) + 2
	}
	return width
}

// renderSearchBar renders the filter selector and the text input.
func (m Model) renderSearchBar() string {
	focused := m.focus == focusInput && m.currentView == ViewSearch
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	line := m.filterTabs(bgColor) + bg.Spaces(2) + m.input.View()
	return m.renderTitledBox("Search", line, m.width, 3, focused)
}

// renderCommandBar renders the key hints for the current view and focus.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.currentView == ViewLogs:
		followLabel := "Pause"
		if !m.logFollow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"esc", "Back"},
		}
	case m.focus == focusInput:
		commands = []cmd{
			{"enter", "Search"},
			{"ctrl+u", "Clear"},
			{"ctrl+f", m.searcher.Filter().Label()},
			{"tab", "Results"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"f", m.searcher.Filter().Label()},
			{"hjkl", "Navigate"},
			{"enter", "Flip card"},
			{"r", "Retry"},
			{"L", "Log"},
		}
		for _, b := range m.keys.ShortHelp() {
			commands = append(commands, cmd{b.Help().Key, b.Help().Desc})
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
