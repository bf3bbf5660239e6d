// Package ui provides the Bubble Tea terminal interface for bookshelf.
//
// # Layout
//
// The screen is split top to bottom into:
//
//   - Header: logo, a badge for the search lifecycle state and a summary of
//     the current request
//   - Search bar: the filter selector (Title, Author, Publisher, ISBN) and the
//     text input
//   - Content: the result grid with a detail pane, or a centered message for
//     the idle, loading, failed and empty states; the diagnostic log view
//     replaces it when open
//   - Command bar: key hints for the focused area
//
// # State
//
// Model never mutates search state directly. Typing and filter changes go to
// the Searcher (UpdateInput, ClearInput, UpdateFilter), and searches run in a
// tea.Cmd so the program loop never blocks on the network. Lifecycle changes
// arrive two ways: a subscription to the Searcher (which delivers the
// intermediate Loading state) and the snapshot returned when a search command
// finishes. Both are applied through applySnapshot, which ignores anything
// older than what is on screen.
//
// # Cards
//
// Each entry is a fixed-size card. Cards with a cover link show the title,
// authors and a cover marker; cards without one show their data face
// (published date and the start of the description) instead. Enter flips the
// selected card between the two faces. The detail pane always shows every
// field of the selected entry.
//
// # Themes
//
// Three palettes are available (Nightfox, Kanagawa, Slate), cycled with T.
// The chosen theme and filter are saved to the preferences file.
package ui
