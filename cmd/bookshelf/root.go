package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/bookshelf/internal/app"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	prefsPath  string
	baseURL    string
	logFile    string
	debug      bool
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		BaseURL:    g.baseURL,
		LogFile:    g.logFile,
		Debug:      g.debug,
		UserAgent:  "bookshelf/" + version,
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "bookshelf",
		Short: "Search a public book catalog from the terminal",
		Long: `Bookshelf searches a public book catalog by title, author, publisher or ISBN.

Run without a subcommand to open the interactive browser, or use
"bookshelf search" to print results for scripts.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file path (default ~/.config/bookshelf/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "Preferences file path (default ~/.config/bookshelf/prefs.toml)")
	pf.StringVar(&flags.baseURL, "base-url", "", "Catalog API base URL")
	pf.StringVar(&flags.logFile, "log-file", "", "Diagnostic log file")
	pf.BoolVar(&flags.debug, "debug", false, "Log at debug level")

	tui := newTUICmd(flags)
	cmd.RunE = tui.RunE
	cmd.Flags().AddFlagSet(tui.Flags())

	cmd.AddCommand(tui)
	cmd.AddCommand(newSearchCmd(flags))

	return cmd
}
