package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bm/internal/version"
)

// ServeFunc runs the HTTP API until ctx is cancelled.
type ServeFunc func(ctx context.Context) error

// NewRootCommand builds the bm command tree. The root command keeps its own
// lenient grammar (see ParseArgs), so cobra flag parsing is disabled there;
// serve and version are regular subcommands.
func NewRootCommand(runner *Runner, serve ServeFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "bm [--perl] [add|list|remove] <url>...",
		Short: "Manage bookmarked links and resources of the site content tree",
		Long: "bm fetches page titles and descriptions and stores them as front matter\n" +
			"documents (links) or in a JSON collection (--perl resources).\n\n" + usage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), ParseArgs(args))
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the link and resource stores as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	})

	return root
}
