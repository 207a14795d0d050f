package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/wikipath/internal/app"
	"go.trai.ch/wikipath/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <corpus>",
		Short: "Parse the corpus and write its graph cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := c.app.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func (c *CLI) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <corpus>",
		Short: "Print the size of the link graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rebuild, _ := cmd.Flags().GetBool("rebuild")
			stats, err := c.app.Stats(cmd.Context(), args[0], app.BuildOptions{Force: rebuild})
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().Bool("rebuild", false, "Ignore the cache and parse the corpus again")
	return cmd
}

func printStats(w io.Writer, stats domain.GraphStats) {
	_, _ = fmt.Fprintf(w, "pages:     %s\n", humanize.Comma(int64(stats.Nodes)))
	_, _ = fmt.Fprintf(w, "links:     %s\n", humanize.Comma(int64(stats.Edges))) //nolint:gosec // Edge counts fit in int64
	_, _ = fmt.Fprintf(w, "redirects: %s\n", humanize.Comma(int64(stats.Aliases)))
	_, _ = fmt.Fprintf(w, "titles:    %s\n", humanize.Comma(int64(stats.Titles)))
}
