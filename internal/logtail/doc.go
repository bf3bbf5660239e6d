// Package logtail reads the tail of the bookshelf diagnostic log for the
// in-app log view.
//
// # Reading Log Files
//
// Read extracts the last maxLines lines of a file in a single pass using a
// ring buffer, so memory stays O(maxLines) regardless of file size. A missing
// file is not an error; Read returns nil, nil so the log view can show an
// empty state before the first search has been logged.
//
//	lines, err := logtail.Read("~/.local/share/bookshelf/bookshelf.log", 400)
//
// # Parsing
//
// The log is written by log/slog's text handler, one logfmt record per line:
//
//	time=2026-10-18T09:12:44.120+02:00 level=INFO msg="search completed" component=search query=title:dune results=10
//
// Parse decodes such a line with github.com/go-logfmt/logfmt into an Entry
// (time, level, message and the remaining attributes in order). Lines that do not look like slog records
// are returned as an Entry carrying only Raw, so nothing is ever dropped from
// the view.
package logtail
