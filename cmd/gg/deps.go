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

var (
	depsMatrix bool
	depsRoots  bool
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Show the cross-initiative dependency graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		switch {
		case depsMatrix:
			if jsonOutput {
				return printJSON(rep.DependencyMatrix)
			}
			printMatrix(rep.DependencyMatrix.Initiatives, rep.DependencyMatrix.Cells)
		case depsRoots:
			if jsonOutput {
				return printJSON(rep.BlockingRoots)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INITIATIVE\tSEVERITY\tCASCADE\tIMPACTED")
			for _, r := range rep.BlockingRoots {
				cascade := fmt.Sprintf("%d", r.CascadeCount)
				if r.Ambiguous {
					cascade += " (cycle)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.Slug,
					ui.RenderSeverity(r.Severity.String()),
					cascade,
					truncate(strings.Join(r.CascadeImpact, ", "), 60),
				)
			}
			w.Flush()
		default:
			if jsonOutput {
				return printJSON(rep.Dependencies)
			}
			printTable(report.DependencyTable(rep))
		}
		return nil
	},
}

// printMatrix renders the blocked-by matrix with row initiatives on the
// left and blocking initiatives across the top.
func printMatrix(initiatives []string, cells [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BLOCKED \\ BLOCKS\t"+strings.Join(initiatives, "\t"))
	for i, name := range initiatives {
		fmt.Fprintln(w, name+"\t"+strings.Join(cells[i], "\t"))
	}
	w.Flush()
}

func init() {
	depsCmd.Flags().BoolVar(&depsMatrix, "matrix", false, "print the blocked-by matrix")
	depsCmd.Flags().BoolVar(&depsRoots, "roots", false, "print blocking roots with cascade impact")
}
