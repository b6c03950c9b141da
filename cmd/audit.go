package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/angoly-ara/inventory"
	"github.com/angoly-ara/inventory/audit"
	"github.com/angoly-ara/inventory/menu"
)

func newAuditCmd(c *cli) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:          "audit",
		Short:        "Print the audit log",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withContainer(cmd, func(_ context.Context, dc *inventory.Container) error {
				entries, err := audit.ReadEntries(c.fs, dc.Config.Path(dc.Config.Audit.File))
				if err != nil {
					return err //nolint:wrapcheck // already wrapped
				}

				if last > 0 && len(entries) > last {
					entries = entries[len(entries)-last:]
				}

				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "the audit log is empty")

					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.Time.Local().Format(time.DateTime), e.User, e.Category, e.Message})
				}

				menu.RenderTable(cmd.OutOrStdout(), []string{"Time", "User", "Category", "Message"}, []int{19, 16, 10, 40}, rows) //nolint:mnd,lll // column widths

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&last, "last", "n", 0, "only print the last n entries")

	return cmd
}
