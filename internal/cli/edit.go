package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/stufflog/internal/journal"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Title        string
	Rating       int
	Comment      string
	Datetime     string
	ClearComment bool
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <category> <title>",
		Short: "Update fields of an existing entry",
		Long: `Update fields of an existing entry.

Only the flags you pass are changed; everything else keeps its prior value.
Renaming with --title fails if the new title collides with another entry.

Examples:
  stufflog edit books "Dune" --rating 4
  stufflog edit books "Dune" --title "Dune (reread)" --comment "Holds up"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "new title")
	cmd.Flags().IntVar(&opts.Rating, "rating", 0, "new rating")
	cmd.Flags().StringVar(&opts.Comment, "comment", "", "new comment")
	cmd.Flags().StringVar(&opts.Datetime, "datetime", "", "new timestamp (2006-01-02 or RFC 3339)")
	cmd.Flags().BoolVar(&opts.ClearComment, "clear-comment", false, "remove the comment")

	return cmd
}

func runEdit(opts *EditOptions, category, title string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	var updates journal.FieldUpdates

	if cmd.Flags().Changed("title") {
		updates.Title = &opts.Title
	}
	if cmd.Flags().Changed("rating") {
		updates.Rating = &opts.Rating
	}
	if cmd.Flags().Changed("comment") && opts.ClearComment {
		return f.Error(ExitCommandError, fmt.Errorf("--comment and --clear-comment are mutually exclusive"))
	}
	if cmd.Flags().Changed("comment") {
		comment := opts.Comment
		ptr := &comment
		updates.Comment = &ptr
	}
	if opts.ClearComment {
		var none *string
		updates.Comment = &none
	}
	if cmd.Flags().Changed("datetime") {
		stamp, err := journal.ParseStamp(opts.Datetime)
		if err != nil {
			return f.Error(ExitCommandError, fmt.Errorf("invalid --datetime: %w", err))
		}
		updates.At = &stamp
	}

	if updates.IsZero() {
		return f.Error(ExitCommandError, fmt.Errorf("nothing to update: pass at least one of --title, --rating, --comment, --datetime, --clear-comment"))
	}

	entry, err := opts.app.EditEntry(opts.categoryPath(category), title, updates)
	if err != nil {
		return f.Error(ExitFailure, err)
	}

	if f.Format == "json" {
		return f.Success(toPayload(entry))
	}
	return f.Success(fmt.Sprintf("Updated entry %q in %s stufflog", entry.Title, category))
}
