package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Get an account's CARB balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			address := args[0]
			resp, err := getJSON(nodeURL + "/balance/" + address)
			if err != nil {
				failInternal("could not reach node at %s: %v", nodeURL, err)
			}
			if !resp.Success {
				fail("error: %s", resp.Message)
			}
			fmt.Printf("%s: %s CARB\n", resp.Data["address"], resp.Data["balance"])
		},
	}
}
