package app

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	stack      bool
	dryRun     bool
	album      string
	allAlbums  bool
	verbosity  int
	configPath string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "immich-stacker",
		Short: "Group duplicate immich photos into stacks",
		Long: `immich-stacker finds photos that are duplicates of each other, either by
filename similarity or because the immich server flagged them, and merges
each group into a stack behind a single primary photo.

By default the server's own duplicate detection drives the run. Use --album
or --all-albums to group by filename within albums instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	rootCmd.Flags().BoolVar(&flags.stack, "stack", false, "create the planned stacks on the server")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the planned stacks without creating anything")
	rootCmd.Flags().StringVar(&flags.album, "album", "", "only stack the album with this ID or name")
	rootCmd.Flags().BoolVar(&flags.allAlbums, "all-albums", false, "stack every album, one at a time")
	rootCmd.Flags().CountVarP(&flags.verbosity, "verbose", "v", "raise log verbosity, repeatable")
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "configuration file path")

	rootCmd.MarkFlagsOneRequired("stack", "dry-run")
	rootCmd.MarkFlagsMutuallyExclusive("stack", "dry-run")
	rootCmd.MarkFlagsMutuallyExclusive("album", "all-albums")

	return rootCmd
}
