package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func mineCmd() *cobra.Command {
	var miner string

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Trigger one mining cycle against the pending pool",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := postJSON(nodeURL+"/mine?miner="+miner, nil)
			if err != nil {
				failInternal("could not reach node at %s: %v", nodeURL, err)
			}
			if !resp.Success {
				fail("mining failed: %s", resp.Message)
			}
			fmt.Printf("mined block %.0f (difficulty %.0f) hash=%s\n",
				resp.Data["index"], resp.Data["difficulty"], resp.Data["hash"])
		},
	}

	cmd.Flags().StringVar(&miner, "miner", "", "address to credit the mining reward to (required)")
	cmd.MarkFlagRequired("miner")

	return cmd
}
