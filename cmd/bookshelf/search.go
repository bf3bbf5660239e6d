package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/bookshelf/internal/app"
	"github.com/five82/bookshelf/internal/render"
)

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var (
		filter string
		format string
	)

	cmd := &cobra.Command{
		Use:   "search TERM...",
		Short: "Run one search and print the results",
		Long: `Runs a single catalog search and writes the normalized results to stdout.

Missing fields are filled with placeholders, so every book has a title,
authors, a publication date and a description.`,
		Example: `  # Table output
  bookshelf search dune

  # Search by author and emit JSON
  bookshelf search --filter author --format json frank herbert`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			opts := flags.options()
			opts.Filter = filter
			return app.Search(cmd.Context(), opts, strings.Join(args, " "), cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Search filter: title, author, publisher or isbn")
	cmd.Flags().StringVarP(&format, "format", "o", string(render.FormatTable),
		fmt.Sprintf("Output format: %s", strings.Join(formatNames(), ", ")))

	return cmd
}

func formatNames() []string {
	formats := render.Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return names
}
