package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/ui"
)

var initiativesCmd = &cobra.Command{
	Use:   "initiatives",
	Short: "List inferred initiatives with progress and status",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep.Initiatives)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INITIATIVE\tISSUES\tOPEN\tPROGRESS\tSTATUS\tPRIORITY\tDUE")
		for _, init := range rep.Initiatives {
			due := ""
			if init.DueDate != nil {
				due = init.DueDate.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d%%\t%s\t%s\t%s\n",
				truncate(init.Name, 40),
				init.IssueCount,
				init.OpenCount,
				init.Progress,
				ui.RenderStatus(init.Status.String()),
				init.Priority,
				due,
			)
		}
		w.Flush()
		fmt.Printf("\n%d initiatives\n", len(rep.Initiatives))
		return nil
	},
}
