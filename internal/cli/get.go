package cli

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <resource> <value>",
		Short: "Fetch and print counters once",
		Long:  "Fetch and print counters once. Resources: " + strings.Join(resourceNames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch, err := lookupFetcher(args[0])
			if err != nil {
				return err
			}

			resp := fetch(cmd.Context(), opts.client, args[1])
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(resp); err != nil {
					return err
				}
			}
			if resp.Failed() {
				opts.log.Debug().Str("resource", args[0]).Str("error", resp.Error).Msg("lookup failed")
				return errors.New(resp.Error)
			}
			if !asJSON {
				printStats(cmd.OutOrStdout(), *resp.Data)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response envelope as JSON")
	return cmd
}
