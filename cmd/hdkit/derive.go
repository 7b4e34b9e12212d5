package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-hdkit/pkg/hdkit"
)

func deriveCmd() *cobra.Command {
	var (
		seedHex    string
		mnemonic   string
		passphrase string
		curveFlag  string
		path       string
		public     bool
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive an extended key from a seed or mnemonic along a BIP-32 path",
		RunE: func(cmd *cobra.Command, args []string) error {
			curveType, err := parseCurveType(curveFlag)
			if err != nil {
				return err
			}

			var master *hdkit.ExtendedKey
			switch {
			case mnemonic != "":
				master, err = hdkit.MasterFromMnemonic(curveType, mnemonic, passphrase, hdkit.BitcoinMainNet)
			case seedHex != "":
				seed, decErr := hex.DecodeString(seedHex)
				if decErr != nil {
					return fmt.Errorf("decoding --seed: %w", decErr)
				}
				master, err = hdkit.MasterFromSeed(curveType, seed, hdkit.BitcoinMainNet)
			default:
				return fmt.Errorf("one of --seed or --mnemonic is required")
			}
			if err != nil {
				return err
			}

			key := master
			if path != "" {
				indices, perr := hdkit.ParsePath(path)
				if perr != nil {
					return perr
				}
				key, err = hdkit.Derive(master, indices)
				if err != nil {
					return err
				}
			}
			if public {
				key = key.Neuter()
			}

			logger.Info("derived extended key",
				zap.String("curve", curveFlag),
				zap.String("path", path),
			)
			fmt.Println(hdkit.SerializeExtendedKey(key))
			return nil
		},
	}

	cmd.Flags().StringVar(&seedHex, "seed", "", "hex-encoded BIP-32 seed")
	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "BIP-39 mnemonic phrase")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "BIP-39 passphrase")
	cmd.Flags().StringVar(&curveFlag, "curve", "secp256k1", "secp256k1|nist256p1|ed25519-slip10|ed25519-kholaw|cardano-byron-legacy")
	cmd.Flags().StringVar(&path, "path", "", "BIP-32 derivation path, e.g. m/44'/0'/0'/0/0")
	cmd.Flags().BoolVar(&public, "public", false, "strip the private key before printing")
	return cmd
}
