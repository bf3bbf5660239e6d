package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/bookshelf/internal/app"
)

func newTUICmd(flags *globalFlags) *cobra.Command {
	var filter, query string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive book browser",
		Long: `Opens the full screen browser. Results are shown as cards that flip
between cover and details, with a detail pane on wide terminals.

The starting filter is taken from --filter, then from the last filter you
picked, then from default_filter in the config file.`,
		Example: `  # Open the browser
  bookshelf

  # Start with an author search already running
  bookshelf tui --filter author --query herbert`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			opts.Filter = filter
			opts.Query = query
			return app.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Search filter: title, author, publisher or isbn")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Pre-fill the search term and run it")

	return cmd
}
