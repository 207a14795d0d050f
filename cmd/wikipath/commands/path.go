package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"go.trai.ch/wikipath/internal/app"
)

func (c *CLI) newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <corpus> <from> <to> [<from> <to>...]",
		Short: "Print the shortest chain of links between pages",
		Long: "Print the shortest chain of links between pages.\n\n" +
			"The corpus is parsed on first use and cached next to it; later runs load the cache.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 3 || len(args)%2 == 0 {
				return fmt.Errorf("expected a corpus followed by pairs of page titles, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rebuild, _ := cmd.Flags().GetBool("rebuild")

			pairs := args[1:]
			queries := make([]app.Query, 0, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				queries = append(queries, app.Query{From: pairs[i], To: pairs[i+1]})
			}

			results, err := c.app.FindPaths(cmd.Context(), args[0], queries, app.BuildOptions{Force: rebuild})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if !r.Found {
					_, _ = fmt.Fprintf(out, "no path found from %q to %q\n", r.Query.From, r.Query.To)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s (%s)\n",
					strings.Join(r.Path, " -> "),
					english.Plural(len(r.Path)-1, "hop", ""),
				)
			}
			return nil
		},
	}
	cmd.Flags().Bool("rebuild", false, "Ignore the cache and parse the corpus again")
	return cmd
}
