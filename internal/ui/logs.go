package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/logtail"
)

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logTailMsg{}
		}
		lines, err := logtail.Read(path, LogBufferLimit)
		return logTailMsg{lines: lines, err: err}
	}
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewSearch
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logFollow = !m.logFollow
		if m.logFollow {
			m.logViewport.GotoBottom()
			return m, tea.Batch(readLogCmd(m.logPath), logTickCmd())
		}
	case key.Matches(msg, m.keys.Down):
		m.logFollow = false
		m.logViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logFollow = false
		m.logViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logFollow = false
		m.logViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logFollow = false
		m.logViewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.logFollow = false
		m.logViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
	}
	return m, nil
}

// updateLogViewport sizes the log viewport and re-renders its content.
func (m *Model) updateLogViewport() {
	width := max(m.width-4, 1)
	height := max(m.contentHeight()-2, 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(width, height)
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
	m.logViewport.SetContent(m.renderLogContent(width))
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	title := "Log"
	if m.logPath != "" {
		title = "Log " + m.logPath
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, m.contentHeight(), true)
}

// renderLogContent formats the tail of the log file, one record per line.
func (m Model) renderLogContent(width int) string {
	styles := m.theme.Styles()
	if m.logErr != nil {
		return styles.DangerText.Render(fmt.Sprintf("Unable to read log: %v", m.logErr))
	}
	if m.logPath == "" {
		return styles.MutedText.Render("Logging to file is disabled")
	}
	if len(m.logLines) == 0 {
		return styles.MutedText.Render("No log entries yet")
	}

	lines := make([]string, 0, len(m.logLines))
	for _, entry := range logtail.ParseLines(m.logLines) {
		lines = append(lines, m.formatLogEntry(entry, width, styles))
	}
	return strings.Join(lines, "\n")
}

// formatLogEntry renders a record as "15:04:05 LEVEL message query [kind]
// key=value ...". The search query and failure kind are pulled forward.
func (m Model) formatLogEntry(entry logtail.Entry, width int, styles Styles) string {
	if !entry.Structured() {
		return styles.Text.Render(truncate(entry.Raw, width))
	}

	var parts []string
	if !entry.Time.IsZero() {
		parts = append(parts, styles.FaintText.Render(entry.Time.Local().Format("15:04:05")))
	}
	parts = append(parts, levelStyle(entry.Level, styles).Render(fmt.Sprintf("%-5s", entry.Level)))
	parts = append(parts, styles.Text.Render(entry.Message))
	if query, ok := entry.Attr("query"); ok {
		parts = append(parts, styles.InfoText.Bold(true).Render(query))
	}
	if kind, ok := entry.Attr("kind"); ok {
		parts = append(parts, styles.DangerText.Render("["+kind+"]"))
	}
	for _, a := range entry.Attrs {
		if a.Key == "query" || a.Key == "kind" {
			continue
		}
		parts = append(parts, styles.AccentText.Render(a.Key)+styles.FaintText.Render("=")+styles.MutedText.Render(a.Value))
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText.Bold(true)
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.SuccessText
	}
}
