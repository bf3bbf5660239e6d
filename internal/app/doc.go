// Package app is the composition root for bookshelf.
//
// Setup reads the config file (with flag and environment overrides), loads
// preferences, points log/slog at the diagnostic log file and builds the
// catalog client. Run then starts a search coordinator and hands it to the
// Bubble Tea UI, which blocks until the user quits. Search drives the same
// coordinator once, without a terminal UI, and renders the response with
// internal/render.
//
// The starting filter for the TUI is the --filter flag if given, then the
// last filter saved in preferences, then default_filter from the config file.
// One-shot searches ignore preferences.
package app
