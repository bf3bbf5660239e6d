package ui

import "strings"

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// wrapLines word-wraps value to width and returns at most maxLines lines.
// The last kept line is truncated when text was dropped.
func wrapLines(value string, width, maxLines int) []string {
	words := strings.Fields(value)
	if len(words) == 0 || width <= 0 || maxLines <= 0 {
		return nil
	}
	var lines []string
	var current strings.Builder
	for _, w := range words {
		wlen := len([]rune(w))
		clen := len([]rune(current.String()))
		switch {
		case clen == 0:
			current.WriteString(w)
		case clen+1+wlen <= width:
			current.WriteByte(' ')
			current.WriteString(w)
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(w)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	for i := range lines {
		lines[i] = truncate(lines[i], width)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		if keep := width - 3; len(last) > keep {
			last = last[:max(keep, 0)]
		}
		lines[maxLines-1] = string(last) + "..."
	}
	return lines
}

// clamp limits v to the inclusive range [lo, hi].
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
