package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func transactionCmd() *cobra.Command {
	var sender, receiver, amount, panelID, signature string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Create a transaction moving CARB between accounts",
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]interface{}{
				"sender":    sender,
				"receiver":  receiver,
				"amount":    amount,
				"panelId":   panelID,
				"signature": signature,
			}
			resp, err := postJSON(nodeURL+"/transactions", body)
			if err != nil {
				failInternal("could not reach node at %s: %v", nodeURL, err)
			}
			if !resp.Success {
				fail("transaction rejected: %s", resp.Message)
			}
			fmt.Printf("transaction accepted: %s\n", resp.Data["txId"])
		},
	}

	cmd.Flags().StringVar(&sender, "from", "", "sender address (required)")
	cmd.Flags().StringVar(&receiver, "to", "", "receiver address (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount as a decimal string (required)")
	cmd.Flags().StringVar(&panelID, "panel-id", "", "associated panel id, if any")
	cmd.Flags().StringVar(&signature, "signature", "", "hex-encoded signature (required)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("signature")

	return cmd
}
