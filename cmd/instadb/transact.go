package main

import (
	"encoding/json"

	"github.com/autom8ter/instadb/model"
	"github.com/spf13/cobra"
)

func transactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transact [file]",
		Short: "apply an ordered step sequence atomically from a yaml/json file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			bits, err := readInput(args)
			if err != nil {
				return err
			}
			var steps []model.Step
			if err := json.Unmarshal(bits, &steps); err != nil {
				return err
			}
			if flags.debug {
				result, err := client.DebugTransact(cmd.Context(), steps...)
				if err != nil {
					return err
				}
				printJSON(result)
				return nil
			}
			result, err := client.Transact(cmd.Context(), steps...)
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
}
