package cli

import (
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <category>",
		Short: "Display all entries in a category",
		Long: `Display all entries in a category, oldest first.

Example:
  stufflog show books`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
}

func runShow(opts *RootOptions, category string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	entries, err := opts.app.Entries(opts.categoryPath(category))
	if err != nil {
		return f.Error(ExitFailure, err)
	}

	if f.Format == "json" {
		return f.Success(toPayloads(entries))
	}
	return f.Success(renderEntries(entries))
}
