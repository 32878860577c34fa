package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func chainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain",
		Short: "Show chain height, transaction count and cumulative carbon reduction",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := getJSON(nodeURL + "/chain")
			if err != nil {
				failInternal("could not reach node at %s: %v", nodeURL, err)
			}
			if !resp.Success {
				fail("error: %s", resp.Message)
			}
			fmt.Printf("height: %.0f\n", resp.Data["height"])
			fmt.Printf("transactions: %.0f\n", resp.Data["txCount"])
			fmt.Printf("cumulative reduction: %.4f kg CO2\n", resp.Data["cumulativeReduction"])
		},
	}
}
