package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/stufflog/internal/journal"
	"github.com/roach88/stufflog/internal/query"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	GreaterThan int
	LessThan    int
	After       string
	Before      string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <category>",
		Short: "Query entries in a category",
		Long: `Query entries in a category.

Filters compose with AND; rating and date bounds are strict. A bare date
normalizes to midnight UTC, so --after 2023-10-01 keeps entries from that
day whose time-of-day is later than midnight.

Examples:
  stufflog query books --greater-than 4
  stufflog query books --after 2023-10-01 --before 2023-12-31`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.GreaterThan, "greater-than", 0, "keep entries with rating strictly above this value")
	cmd.Flags().IntVar(&opts.LessThan, "less-than", 0, "keep entries with rating strictly below this value")
	cmd.Flags().StringVar(&opts.After, "after", "", "keep entries dated strictly after this (2006-01-02 or RFC 3339)")
	cmd.Flags().StringVar(&opts.Before, "before", "", "keep entries dated strictly before this (2006-01-02 or RFC 3339)")

	return cmd
}

func runQuery(opts *QueryOptions, category string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	var filter query.Filter
	if cmd.Flags().Changed("greater-than") {
		filter.GreaterThan = &opts.GreaterThan
	}
	if cmd.Flags().Changed("less-than") {
		filter.LessThan = &opts.LessThan
	}
	if opts.After != "" {
		stamp, err := journal.ParseStamp(opts.After)
		if err != nil {
			return f.Error(ExitCommandError, fmt.Errorf("invalid --after: %w", err))
		}
		filter.After = &stamp
	}
	if opts.Before != "" {
		stamp, err := journal.ParseStamp(opts.Before)
		if err != nil {
			return f.Error(ExitCommandError, fmt.Errorf("invalid --before: %w", err))
		}
		filter.Before = &stamp
	}

	entries, err := opts.app.Query(opts.categoryPath(category), filter)
	if err != nil {
		return f.Error(ExitFailure, err)
	}

	if f.Format == "json" {
		return f.Success(toPayloads(entries))
	}
	return f.Success(renderEntries(entries))
}
