package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show node/ledger status: height and pending pool state",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := getJSON(nodeURL + "/status")
			if err != nil {
				failInternal("could not reach node at %s: %v", nodeURL, err)
			}
			if !resp.Success {
				fail("error: %s", resp.Message)
			}
			fmt.Printf("height: %.0f\n", resp.Data["height"])
			fmt.Printf("pending transactions: %.0f\n", resp.Data["pendingTransactions"])
			fmt.Printf("pending samples: %.0f\n", resp.Data["pendingSamples"])
			fmt.Printf("reference reduction: %.4f\n", resp.Data["referenceReduction"])
		},
	}
}
