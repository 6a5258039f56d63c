package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kickstart-labs/kickstart/internal/scaffold"
	"github.com/kickstart-labs/kickstart/internal/ui"
)

func init() {
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List templates and their optional tools",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := scaffold.Templates()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, t := range templates {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s  %s\n", ui.TitleStyle.Render(t.Name), t.DisplayName)
			fmt.Fprintf(out, "  %s\n", ui.MutedStyle.Render(t.Description))
			fmt.Fprintf(out, "  source: %s\n", t.Source)
			if len(t.Tools) == 0 {
				continue
			}
			fmt.Fprintln(out, "  tools:")
			for _, tool := range t.Tools {
				fmt.Fprintf(out, "    %-16s %s\n", tool.Value, ui.MutedStyle.Render(tool.Label))
			}
		}
		return nil
	},
}
