package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/domain"
)

func newMoodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "List the mood presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, mood := range domain.Moods {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", mood.Slug(), mood.String(), mood.Description())
			}
			tw.Flush()
		},
	}
}
