package main

import (
	"encoding/json"

	"github.com/autom8ter/instadb/model"
	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query [file]",
		Short: "execute an InstaQL query expression from a yaml/json file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			bits, err := readInput(args)
			if err != nil {
				return err
			}
			var q model.Query
			if err := json.Unmarshal(bits, &q); err != nil {
				return err
			}
			var result any
			if flags.debug {
				result, err = client.DebugQuery(cmd.Context(), q)
			} else {
				result, err = client.Query(cmd.Context(), q)
			}
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
}
