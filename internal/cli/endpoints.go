package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"livecounter-backend/internal/model"
)

func newEndpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the available lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPLATFORM\tPATH\tSTABLE")
			for _, e := range model.Endpoints() {
				stable := "yes"
				if !e.IsStable {
					stable = "beta"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Platform, e.Path, stable)
			}
			return w.Flush()
		},
	}
}
