// Package config loads bookshelf's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bookshelf/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Empty or zero fields also use defaults
//  5. BOOKSHELF_BASE_URL and BOOKSHELF_LOG_FILE override the file
//
// # TOML Format
//
//	base_url = "https://www.googleapis.com/books/v1/"
//	timeout_seconds = 10
//	default_filter = "title"   # title, author, publisher, isbn
//	log_file = "~/.local/share/bookshelf/bookshelf.log"
//
// All fields are optional. Tilde expansion is performed for log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, TOML parse errors and unknown filter names. A missing config
// file is not an error.
package config
