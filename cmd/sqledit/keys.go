package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dshills/sqledit/internal/input/keymap"
)

func newKeysCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key bindings",
		Long: `List the active key bindings grouped by category: the defaults,
the [keys.bindings] overrides from the config file, and the Shift
variants derived for navigation keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.cfg.Dispatcher(nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			title := lipgloss.NewStyle().Bold(true)
			fmt.Fprintf(out, "%s %s\n", title.Render("expand trigger:"), d.Trigger())
			for _, group := range keymap.GroupByCategory(d.Table().Bindings()) {
				t := table.New().
					Border(lipgloss.RoundedBorder()).
					Headers("KEYS", "ACTION", "DESCRIPTION")
				for _, b := range group.Bindings {
					t.Row(b.Keys, string(b.Action), b.Description)
				}
				fmt.Fprintf(out, "\n%s\n%s\n", title.Render(group.Name), t.Render())
			}
			return nil
		},
	}
}
