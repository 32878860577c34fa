package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func contractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contract <name> [args...]",
		Short: "Execute a named contract (CarbonOffset, CreateMarketListing)",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := args[0]
			ctorArgs := make([]interface{}, 0, len(args)-1)
			for _, a := range args[1:] {
				ctorArgs = append(ctorArgs, a)
			}

			resp, err := postJSON(nodeURL+"/contracts/"+name, ctorArgs)
			if err != nil {
				failInternal("could not reach node at %s: %v", nodeURL, err)
			}
			if !resp.Success {
				fail("contract execution failed: %s", resp.Message)
			}
			fmt.Printf("result: %v\n", resp.Data["result"])
		},
	}
}
