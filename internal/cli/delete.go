package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category> <title>",
		Short: "Delete an entry from a category",
		Long: `Delete an entry from a category.

Example:
  stufflog delete books "Dune"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runDelete(opts *RootOptions, category, title string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if err := opts.app.DeleteEntry(opts.categoryPath(category), title); err != nil {
		return f.Error(ExitFailure, err)
	}

	return f.Success(fmt.Sprintf("Deleted entry %q from %s stufflog", title, category))
}
