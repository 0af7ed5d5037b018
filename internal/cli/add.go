package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/stufflog/internal/journal"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Datetime string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <category> <title> <rating> [comment]",
		Short: "Add a new entry to a category",
		Long: `Add a new entry to a category.

The rating is an integer; 1-5 is the usual scale but any integer is stored.
The entry is stamped with the current time unless --datetime is given.

Examples:
  stufflog add books "Dune" 5 "Amazing sci-fi book"
  stufflog add books "Dune" 5 --datetime 2023-10-05`,
		Args:          cobra.RangeArgs(3, 4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Datetime, "datetime", "", "entry timestamp (2006-01-02 or RFC 3339; default: now)")

	return cmd
}

func runAdd(opts *AddOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	category, title := args[0], args[1]

	rating, err := strconv.Atoi(args[2])
	if err != nil {
		return f.Error(ExitCommandError, fmt.Errorf("invalid rating %q: not an integer", args[2]))
	}

	var comment *string
	if len(args) == 4 {
		comment = &args[3]
	}

	var at *journal.Stamp
	if opts.Datetime != "" {
		stamp, err := journal.ParseStamp(opts.Datetime)
		if err != nil {
			return f.Error(ExitCommandError, fmt.Errorf("invalid --datetime: %w", err))
		}
		at = &stamp
	}

	entry, err := opts.app.AddEntry(opts.categoryPath(category), title, rating, comment, at)
	if err != nil {
		return f.Error(ExitFailure, err)
	}

	if f.Format == "json" {
		return f.Success(toPayload(entry))
	}
	return f.Success(fmt.Sprintf("Added entry %q to %s stufflog", entry.Title, category))
}
