package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-logfmt/logfmt"
)

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Attr is one key=value pair from a log record.
type Attr struct {
	Key   string
	Value string
}

// Entry is a parsed log record.
type Entry struct {
	Raw     string
	Time    time.Time
	Level   string
	Message string
	Attrs   []Attr
}

// Structured reports whether the line was recognised as a slog record.
func (e Entry) Structured() bool {
	return e.Level != "" || e.Message != ""
}

// Attr returns the value of the first attribute named key.
func (e Entry) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Parse splits a slog text-handler line into an Entry. slog writes logfmt
// records, so the line is decoded with a logfmt decoder; lines that do not
// decode, or that carry neither level nor msg, come back unstructured.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	dec := logfmt.NewDecoder(strings.NewReader(line))
	for dec.ScanRecord() {
		for dec.ScanKeyval() {
			key, value := string(dec.Key()), string(dec.Value())
			switch key {
			case "time":
				if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
					entry.Time = ts
				}
			case "level":
				entry.Level = strings.ToUpper(value)
			case "msg":
				entry.Message = value
			default:
				entry.Attrs = append(entry.Attrs, Attr{Key: key, Value: value})
			}
		}
	}
	if dec.Err() != nil || !entry.Structured() {
		return Entry{Raw: line}
	}
	return entry
}

// ParseLines parses every line in order.
func ParseLines(lines []string) []Entry {
	if len(lines) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, Parse(line))
	}
	return entries
}
