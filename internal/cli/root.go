// Package cli wires the cobra command surface to the snapshot
// pipeline.
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pcuci/catp/internal/version"
	"github.com/pcuci/catp/pkg/config"
	"github.com/pcuci/catp/pkg/logging"
)

// runOptions carries the flag values for one invocation.
type runOptions struct {
	zoom             string
	out              string
	maxKB            int
	only             []string
	exclude          []string
	allow            []string
	keepNotebooks    bool
	depth            int
	noGit            bool
	clipboard        bool
	clipboardTimeout float64
	quiet            bool
	verbosity        int
}

// NewRootCmd builds the catp command tree.
func NewRootCmd() *cobra.Command {
	opts := &runOptions{}
	// Flag defaults mirror the embedded configuration so --help shows
	// the real values; config files still win unless the flag is set.
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "catp [paths...]",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		Args:  cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity := opts.verbosity
			if opts.quiet {
				verbosity = -1
			}
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.zoom, "zoom", "z", "contents", MsgFlagZoom)
	flags.StringVarP(&opts.out, "out", "o", "", MsgFlagOut)
	flags.IntVarP(&opts.maxKB, "max-kb", "k", defaults.MaxKB, MsgFlagMaxKB)
	flags.StringArrayVar(&opts.only, "only", nil, MsgFlagOnly)
	flags.StringArrayVarP(&opts.exclude, "exclude", "e", nil, MsgFlagExclude)
	flags.StringArrayVarP(&opts.allow, "allow", "a", nil, MsgFlagAllow)
	flags.BoolVar(&opts.keepNotebooks, "no-ipynb-truncate", false, MsgFlagNoIpynbTruncate)
	flags.IntVarP(&opts.depth, "depth", "d", defaults.Depth, MsgFlagDepth)
	flags.BoolVar(&opts.noGit, "no-git", false, MsgFlagNoGit)
	flags.BoolVarP(&opts.clipboard, "clipboard", "c", false, MsgFlagClipboard)
	flags.Float64Var(&opts.clipboardTimeout, "clipboard-timeout", defaults.ClipboardTimeoutSeconds, MsgFlagClipboardTimeout)

	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, MsgFlagQuiet)
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "catp version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}
