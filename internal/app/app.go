package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/config"
	"github.com/five82/bookshelf/internal/logging"
	"github.com/five82/bookshelf/internal/prefs"
	"github.com/five82/bookshelf/internal/render"
	"github.com/five82/bookshelf/internal/search"
	"github.com/five82/bookshelf/internal/state"
	"github.com/five82/bookshelf/internal/ui"
)

// Options configure a bookshelf run. Empty fields fall back to the config
// file, then to built-in defaults.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/bookshelf/prefs.toml
	BaseURL    string
	LogFile    string
	Debug      bool
	Filter     string
	Query      string
	UserAgent  string
}

// Env is the wired runtime shared by the TUI and one-shot searches.
type Env struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
	Client    *catalog.Client

	closeLog func() error
}

// Setup loads configuration and preferences, opens the diagnostic log and
// builds the catalog client.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = base
	}
	if logFile := strings.TrimSpace(opts.LogFile); logFile != "" {
		expanded, err := config.ExpandPath(logFile)
		if err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.LogFile = expanded
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger, closeLog, err := logging.Setup(cfg.LogFile, opts.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	clientOpts := []catalog.Option{catalog.WithTimeout(cfg.Timeout)}
	if opts.UserAgent != "" {
		clientOpts = append(clientOpts, catalog.WithUserAgent(opts.UserAgent))
	}
	client, err := catalog.NewClient(cfg.BaseURL, clientOpts...)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "path", prefsPath, "error", err)
	}

	logger.Debug("bookshelf configured",
		"base_url", client.BaseURL(),
		"timeout", cfg.Timeout,
		"default_filter", cfg.DefaultFilter.String(),
	)

	return &Env{
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Logger:    logger,
		Client:    client,
		closeLog:  closeLog,
	}, nil
}

// Close flushes and closes the diagnostic log.
func (e *Env) Close() error {
	if e == nil || e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

// interactiveFilter picks the TUI's starting filter: an explicit flag, then
// the last filter the user chose, then the configured default.
func (e *Env) interactiveFilter(explicit string) (catalog.Filter, error) {
	if strings.TrimSpace(explicit) != "" {
		return catalog.ParseFilter(explicit)
	}
	return e.Prefs.FilterOr(e.Config.DefaultFilter), nil
}

// oneShotFilter picks the filter for a non-interactive search: an explicit
// flag, then the configured default.
func (e *Env) oneShotFilter(explicit string) (catalog.Filter, error) {
	if strings.TrimSpace(explicit) != "" {
		return catalog.ParseFilter(explicit)
	}
	return e.Config.DefaultFilter, nil
}

// Run boots the bookshelf TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	filter, err := env.interactiveFilter(opts.Filter)
	if err != nil {
		return err
	}

	coordinator := search.New(env.Client,
		search.WithLogger(env.Logger),
		search.WithFilter(filter),
	)
	defer coordinator.Close()

	env.Logger.Info("starting tui", "filter", filter.String(), "theme", env.Prefs.Theme)

	return ui.Run(ui.Options{
		Context:   ctx,
		Searcher:  coordinator,
		Logger:    env.Logger,
		ThemeName: env.Prefs.Theme,
		PrefsPath: env.PrefsPath,
		LogPath:   env.Config.LogFile,
		Query:     opts.Query,
	})
}

// ErrEmptyTerm is returned by Search when there is nothing to search for.
var ErrEmptyTerm = errors.New("search term required")

// Search runs one search for term and writes the normalized response to w.
func Search(ctx context.Context, opts Options, term string, w io.Writer, format render.Format) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	return env.Search(ctx, opts.Filter, term, w, format)
}

// Search runs one search with an already wired Env.
func (e *Env) Search(ctx context.Context, filterName, term string, w io.Writer, format render.Format) error {
	filter, err := e.oneShotFilter(filterName)
	if err != nil {
		return err
	}

	coordinator := search.New(e.Client,
		search.WithLogger(e.Logger),
		search.WithFilter(filter),
	)
	defer coordinator.Close()

	coordinator.UpdateInput(strings.TrimSpace(term))
	switch s := coordinator.Search(ctx).(type) {
	case state.Success:
		return render.Write(w, s.Response, format)
	case state.Failure:
		return fmt.Errorf("search %s: %w", s.Request.Query(), s.Err)
	case state.Idle:
		return ErrEmptyTerm
	default:
		return fmt.Errorf("search ended in unexpected state %s", state.Name(s))
	}
}
