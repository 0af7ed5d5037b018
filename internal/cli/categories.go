package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stufflog/internal/store"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "categories",
		Short:         "List all categories under the storage root",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(rootOpts, cmd)
		},
	}
}

func runCategories(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	names, err := store.ListCategories(opts.Dir)
	if err != nil {
		return f.Error(ExitFailure, err)
	}

	if f.Format == "json" {
		if names == nil {
			names = []string{}
		}
		return f.Success(names)
	}
	if len(names) == 0 {
		return f.Success("No categories found.")
	}
	return f.Success(strings.Join(names, "\n"))
}
