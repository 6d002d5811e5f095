package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/ui"
)

var contentionCmd = &cobra.Command{
	Use:   "contention",
	Short: "Score assignees stretched across initiatives",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep.Contention)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ASSIGNEE\tINITIATIVES\tOPEN\tHIGH PRI\tTEAMS\tCONTENTION")
		for _, c := range rep.Contention {
			level := fmt.Sprintf("%d", c.ContentionLevel)
			switch {
			case c.ContentionLevel >= 70:
				level += " " + ui.RenderSeverity("high")
			case c.ContentionLevel >= 40:
				level += " " + ui.RenderSeverity("medium")
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
				c.Assignee,
				c.InitiativeCount,
				c.TotalIssues,
				c.HighPriorityCount,
				truncate(strings.Join(c.Teams, ", "), 40),
				level,
			)
		}
		w.Flush()
		fmt.Printf("\n%d assignees\n", len(rep.Contention))
		return nil
	},
}
