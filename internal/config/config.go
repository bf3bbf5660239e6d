package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/bookshelf/internal/catalog"
)

// Config captures the settings bookshelf reads at startup.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	DefaultFilter catalog.Filter
	LogFile       string
}

const (
	defaultConfigPath = "~/.config/bookshelf/config.toml"
	defaultLogFile    = "~/.local/share/bookshelf/bookshelf.log"
	defaultTimeout    = 10 * time.Second

	envBaseURL = "BOOKSHELF_BASE_URL"
	envLogFile = "BOOKSHELF_LOG_FILE"
)

// Load locates and parses the config file, falling back to defaults when it
// is missing. Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:       catalog.DefaultBaseURL,
		Timeout:       defaultTimeout,
		DefaultFilter: catalog.FilterTitle,
		LogFile:       mustExpand(defaultLogFile),
	}

	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if bytes != nil {
		var raw struct {
			BaseURL        string `toml:"base_url"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
			DefaultFilter  string `toml:"default_filter"`
			LogFile        string `toml:"log_file"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		if base := strings.TrimSpace(raw.BaseURL); base != "" {
			cfg.BaseURL = base
		}
		if raw.TimeoutSeconds > 0 {
			cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
		}
		filter, err := catalog.ParseFilter(raw.DefaultFilter)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.DefaultFilter = filter
		if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
			cfg.LogFile = mustExpand(logFile)
		}
	}

	if base := strings.TrimSpace(os.Getenv(envBaseURL)); base != "" {
		cfg.BaseURL = base
	}
	if logFile := strings.TrimSpace(os.Getenv(envLogFile)); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

// DefaultPath returns the config location used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
