// Package cli wires the git-fatfiles command line to the history scanner.
package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/codebling/git-fatfiles/internal/history"
	"github.com/codebling/git-fatfiles/internal/integration"
)

// flags holds the CLI-only settings that do not map directly onto
// history.Options.
type flags struct {
	minSize     string
	integration bool
}

// New builds the git-fatfiles root command.
func New(version string) *cobra.Command {
	var (
		options history.Options
		extra   flags
	)

	cmd := &cobra.Command{
		Use:   "git-fatfiles [flags] [path...]",
		Short: "Show the size of files committed over the whole history of a git repository",
		Long: heredoc.Doc(`
			git-fatfiles sums the on-disk size of every object ever committed,
			per file path, and prints one sorted report (smallest first).

			Run it from anywhere inside a git repository. Positional arguments
			restrict the report to the given paths; with no arguments the whole
			repository is scanned.

			Modes:
			  Default mode reports per file. Use --dirs to charge each file to
			  its parent directory instead.

			The '-I' flag is available if using the integration script for shell usage.
			It will then run an interactive mode where the output of the tool is piped to 'fzf'
		`),
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if extra.integration {
				rendered, err := integration.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				//nolint:forbidigo // Integration script output to console
				fmt.Println(rendered)

				return nil
			}

			if options.Top < 0 {
				return errors.New("top cannot be negative")
			}

			// Parse minSize string to bytes
			if extra.minSize != "" {
				size, err := humanize.ParseBytes(extra.minSize)
				if err != nil {
					return fmt.Errorf("invalid min-size: %w", err)
				}

				options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
			}

			options.Paths = args

			return logic(options)
		},
	}

	addFlags(cmd.Flags(), &options, &extra)

	return cmd
}

// addFlags registers every flag on fs.
func addFlags(fs *pflag.FlagSet, options *history.Options, extra *flags) {
	fs.BoolVarP(
		&options.DirsMode,
		"dirs",
		"d",
		false,
		"Show the size of directories based on files committed in them",
	)
	fs.StringVar(&extra.minSize, "min-size", "", "Minimum aggregated size to report (e.g. 1MB)")
	fs.IntVarP(&options.Top, "top", "t", 0, "Only show the N largest entries (0=all)")
	fs.BoolVarP(&options.Worktree, "worktree", "w", false, "Also show each path's current size in the working tree")
	fs.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	fs.BoolVarP(&extra.integration, "init", "i", false, "Output init script for shell usage")

	fs.SortFlags = false
}
