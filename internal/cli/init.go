package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init <category>",
		Short: "Initialize a new stufflog category",
		Long: `Initialize a new stufflog category.

Creates an empty storage unit for the category under the storage root.

Example:
  stufflog init books`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, args[0], cmd)
		},
	}
}

func runInit(opts *RootOptions, category string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	path := opts.categoryPath(category)
	f.VerboseLog("creating storage unit at %s", path)

	if err := opts.app.InitCategory(path, category); err != nil {
		return f.Error(ExitFailure, err)
	}

	return f.Success(fmt.Sprintf("Initialized new stufflog for category %q", category))
}
