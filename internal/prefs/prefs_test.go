package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/bookshelf/internal/catalog"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.FilterOr(catalog.FilterPublisher) != catalog.FilterPublisher {
		t.Fatalf("FilterOr = %v, want fallback", p.FilterOr(catalog.FilterPublisher))
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "bookshelf")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\nfilter = \"isbn\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if p.FilterOr(catalog.FilterTitle) != catalog.FilterISBN {
		t.Fatalf("FilterOr = %v, want isbn", p.FilterOr(catalog.FilterTitle))
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Theme: "Kanagawa", Filter: catalog.FilterAuthor.String()}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Kanagawa")
	}
	if loaded.FilterOr(catalog.FilterTitle) != catalog.FilterAuthor {
		t.Fatalf("FilterOr = %v, want author", loaded.FilterOr(catalog.FilterTitle))
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if p, err := Load(prefsFile); err != nil || p.Theme != defaultTheme {
		t.Fatalf("Load = %+v, %v, want %q, nil", p, err, defaultTheme)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err == nil {
		t.Fatal("Load returned nil error for invalid TOML")
	}
	if p.Theme != defaultTheme || p.Filter != "" {
		t.Fatalf("Load = %+v, want defaults", p)
	}
}

func TestLoad_UnreadablePathReturnsDefaultsAndError(t *testing.T) {
	dir := t.TempDir()

	p, err := Load(dir)
	if err == nil {
		t.Fatal("Load returned nil error for a directory")
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestFilterOr_UnknownValueFallsBack(t *testing.T) {
	p := Prefs{Filter: "genre"}
	if got := p.FilterOr(catalog.FilterAuthor); got != catalog.FilterAuthor {
		t.Fatalf("FilterOr = %v, want author fallback", got)
	}
}
