// Package render writes a normalized catalog response for non-interactive use.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/five82/bookshelf/internal/catalog"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats in help order.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML}
}

// ParseFormat accepts a format name, case-insensitively. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Write encodes resp to w in the requested format.
func Write(w io.Writer, resp catalog.Response, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	case FormatTable, "":
		_, err := io.WriteString(w, Table(resp))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders resp as a bordered table followed by a result summary.
func Table(resp catalog.Response) string {
	if len(resp.Entries) == 0 {
		return fmt.Sprintf("No books found (%d total)\n", resp.ResultCount)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Title", "Authors", "Published", "Cover").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, entry := range resp.Entries {
		cover := "no"
		if entry.Volume.HasCover() {
			cover = "yes"
		}
		t.Row(
			strconv.Itoa(i+1),
			truncate(entry.Volume.Title, 48),
			truncate(entry.Volume.AuthorLine(), 32),
			entry.Volume.PublishedDate,
			cover,
		)
	}

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d of %d results\n", len(resp.Entries), resp.ResultCount)
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
