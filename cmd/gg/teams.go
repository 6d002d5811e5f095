package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/report"
	"github.com/alfredjeanlab/gauge/internal/ui"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Show teams and their capacity scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(struct {
				Teams    any `json:"teams"`
				Capacity any `json:"capacity"`
			}{rep.Teams, rep.TeamCapacity})
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TEAM\tMEMBERS\tOPEN\tACTIVE INITIATIVES\tCOMPLETION\tCAPACITY\tSTATUS")
		for _, c := range rep.TeamCapacity {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d%%\t%s\t%s\n",
				c.Slug,
				c.MemberCount,
				c.OpenIssueCount,
				c.ActiveInitiativeCount,
				c.CompletionRate,
				ui.RenderScore(c.CapacityScore, 40, 70),
				ui.RenderStatus(c.Status.String()),
			)
		}
		w.Flush()

		for _, t := range rep.Teams {
			if len(t.Members) > 0 {
				fmt.Printf("\n%s: %s\n", t.Slug, ui.RenderMuted(strings.Join(t.Members, ", ")))
			}
		}
		return nil
	},
}

var attributionCmd = &cobra.Command{
	Use:   "attribution",
	Short: "Map initiatives to the teams contributing to them",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep.InitiativeAttributions)
		}
		printTable(report.AttributionTable(rep))
		return nil
	},
}
