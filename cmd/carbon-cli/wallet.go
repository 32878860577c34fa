package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/spf13/cobra"
)

// keyFile is the on-disk shape of a generated identity. The private key is
// stored raw; a real deployment would encrypt it at rest, which is out of
// scope here the same way it is for the node's own crypto boundary.
type keyFile struct {
	Address    string `json:"address"`
	PublicHex  string `json:"publicKeyHex"`
	PrivateHex string `json:"privateKeyHex"`
}

func keygenCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a Dilithium identity for signing transactions and telemetry",
		Run: func(cmd *cobra.Command, args []string) {
			pub, priv, err := mode3.GenerateKey(rand.Reader)
			if err != nil {
				failInternal("keygen failed: %v", err)
			}
			pubBytes, err := pub.MarshalBinary()
			if err != nil {
				failInternal("keygen failed: %v", err)
			}
			privBytes, err := priv.MarshalBinary()
			if err != nil {
				failInternal("keygen failed: %v", err)
			}
			sum := sha256.Sum256(pubBytes)
			address := hex.EncodeToString(sum[:])[:16]

			kf := keyFile{
				Address:    address,
				PublicHex:  hex.EncodeToString(pubBytes),
				PrivateHex: hex.EncodeToString(privBytes),
			}

			if out == "" {
				out = filepath.Join(".", address+".key.json")
			}
			if err := writeKeyFile(out, kf); err != nil {
				failInternal("could not write key file: %v", err)
			}

			fmt.Printf("address: %s\n", address)
			fmt.Printf("key file: %s\n", out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "path to write the key file (default <address>.key.json)")
	return cmd
}

func writeKeyFile(path string, kf keyFile) error {
	data := fmt.Sprintf("{\n  \"address\": %q,\n  \"publicKeyHex\": %q,\n  \"privateKeyHex\": %q\n}\n",
		kf.Address, kf.PublicHex, kf.PrivateHex)
	return os.WriteFile(path, []byte(data), 0600)
}
