package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var nodeURL string

func main() {
	root := &cobra.Command{
		Use:   "carbon-cli",
		Short: "Client for a CarbonChain node",
	}
	root.PersistentFlags().StringVar(&nodeURL, "node", "http://localhost:8080", "node API URL")

	root.AddCommand(
		registerPanelCmd(),
		balanceCmd(),
		transactionCmd(),
		contractCmd(),
		chainCmd(),
		statusCmd(),
		mineCmd(),
		keygenCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fail reports a user-facing error (bad input, rejected request) and exits
// 1 exit code convention.
func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// failInternal reports an unexpected failure (unreachable node, malformed
// response) and exits 2 exit code convention.
func failInternal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
