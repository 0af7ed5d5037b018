// Package cli is the stufflog command dispatcher.
//
// Commands parse arguments and flags, resolve the category's storage unit
// path, and call into internal/app. All journal semantics live below this
// package; all rendering and exit-code policy lives here.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/stufflog/internal/app"
	"github.com/roach88/stufflog/internal/journal"
	"github.com/roach88/stufflog/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Dir     string // storage root directory
	Format  string // "json" | "text"
	Verbose bool

	app *app.App
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the stufflog CLI.
// App options (clock, hooks) are forwarded to the operations layer;
// production callers pass none.
func NewRootCommand(appOpts ...app.Option) *cobra.Command {
	opts := &RootOptions{app: app.New(appOpts...)}

	defaultDir, dirErr := ResolveStorageRoot(os.Getenv)

	cmd := &cobra.Command{
		Use:   "stufflog",
		Short: "stufflog - a general journalling CLI",
		Long: "A journalling tool that keeps named categories (books, movies, moods, ...)\n" +
			"of rated, timestamped entries in human-editable YAML files.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Dir == "" {
				if dirErr != nil {
					return fmt.Errorf("no storage directory: %w (set --dir or %s)", dirErr, EnvStorageRoot)
				}
				opts.Dir = defaultDir
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", defaultDir, "storage root directory")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))

	return cmd
}

// categoryPath resolves the storage unit path for a category name.
func (o *RootOptions) categoryPath(name string) string {
	return store.PathFor(o.Dir, name)
}

// formatter builds the OutputFormatter for one command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		TraceID:   NewTraceID(),
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// entryPayload is the JSON wire form of one entry.
type entryPayload struct {
	Title    string  `json:"title"`
	Datetime string  `json:"datetime"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment,omitempty"`
}

func toPayload(e journal.Entry) entryPayload {
	return entryPayload{
		Title:    e.Title,
		Datetime: e.At.String(),
		Rating:   e.Rating,
		Comment:  e.Comment,
	}
}

func toPayloads(entries []journal.Entry) []entryPayload {
	out := make([]entryPayload, 0, len(entries))
	for _, e := range entries {
		out = append(out, toPayload(e))
	}
	return out
}
