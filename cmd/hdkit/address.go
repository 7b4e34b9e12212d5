package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-hdkit/pkg/hdkit"
)

func buildAddressParams(chain, netVerHex, viewKeyHex, paymentIDHex string) (hdkit.AddressParams, error) {
	switch chain {
	case "bitcoin":
		netVer, err := hex.DecodeString(netVerHex)
		if err != nil {
			return nil, fmt.Errorf("decoding --net-ver: %w", err)
		}
		return hdkit.BitcoinParams{NetVer: netVer}, nil
	case "monero":
		netVerBytes, err := hex.DecodeString(netVerHex)
		if err != nil {
			return nil, fmt.Errorf("decoding --net-ver: %w", err)
		}
		if len(netVerBytes) != 1 {
			return nil, fmt.Errorf("--net-ver must be a single byte for monero")
		}
		viewKey, err := hex.DecodeString(viewKeyHex)
		if err != nil {
			return nil, fmt.Errorf("decoding --view-key: %w", err)
		}
		var paymentID []byte
		if paymentIDHex != "" {
			paymentID, err = hex.DecodeString(paymentIDHex)
			if err != nil {
				return nil, fmt.Errorf("decoding --payment-id: %w", err)
			}
		}
		return hdkit.MoneroParams{NetVer: netVerBytes[0], ViewKey: viewKey, PaymentID: paymentID}, nil
	default:
		return nil, fmt.Errorf("unknown chain %q", chain)
	}
}

func addressCmd() *cobra.Command {
	var (
		chain        string
		pubKeyHex    string
		netVerHex    string
		viewKeyHex   string
		paymentIDHex string
	)

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Render a public key as a chain address",
		RunE: func(cmd *cobra.Command, args []string) error {
			pubKeyBytes, err := hex.DecodeString(pubKeyHex)
			if err != nil {
				return fmt.Errorf("decoding --pubkey: %w", err)
			}
			params, err := buildAddressParams(chain, netVerHex, viewKeyHex, paymentIDHex)
			if err != nil {
				return err
			}
			addr, err := hdkit.EncodeAddress(chain, pubKeyBytes, params)
			if err != nil {
				return err
			}
			logger.Info("encoded address", zap.String("chain", chain))
			fmt.Println(addr)
			return nil
		},
	}

	cmd.Flags().StringVar(&chain, "chain", "bitcoin", "bitcoin|monero")
	cmd.Flags().StringVar(&pubKeyHex, "pubkey", "", "hex-encoded public key (spend key for monero)")
	cmd.Flags().StringVar(&netVerHex, "net-ver", "", "hex-encoded network version prefix")
	cmd.Flags().StringVar(&viewKeyHex, "view-key", "", "hex-encoded monero view public key")
	cmd.Flags().StringVar(&paymentIDHex, "payment-id", "", "hex-encoded 8-byte monero payment ID (integrated address)")
	cmd.MarkFlagRequired("pubkey")
	cmd.MarkFlagRequired("net-ver")
	return cmd
}

func decodeAddressCmd() *cobra.Command {
	var (
		chain        string
		address      string
		netVerHex    string
		viewKeyHex   string
		paymentIDHex string
	)

	cmd := &cobra.Command{
		Use:   "decode-address",
		Short: "Decode a chain address back into its embedded key material",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := buildAddressParams(chain, netVerHex, viewKeyHex, paymentIDHex)
			if err != nil {
				return err
			}
			payload, err := hdkit.DecodeAddress(chain, address, params)
			if err != nil {
				return err
			}
			logger.Info("decoded address", zap.String("chain", chain))
			fmt.Println(hex.EncodeToString(payload))
			return nil
		},
	}

	cmd.Flags().StringVar(&chain, "chain", "bitcoin", "bitcoin|monero")
	cmd.Flags().StringVar(&address, "address", "", "address string to decode")
	cmd.Flags().StringVar(&netVerHex, "net-ver", "", "hex-encoded network version prefix")
	cmd.Flags().StringVar(&viewKeyHex, "view-key", "", "hex-encoded monero view public key (not used when decoding)")
	cmd.Flags().StringVar(&paymentIDHex, "payment-id", "", "hex-encoded 8-byte monero payment ID expected in an integrated address")
	cmd.MarkFlagRequired("address")
	cmd.MarkFlagRequired("net-ver")
	return cmd
}
