package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-hdkit/pkg/hdkit"
)

// signerCurveType parses curveFlag the same way parseCurveType does,
// then rejects the ed25519-family curves up front: internal/crypto/signer
// only implements ECDSA over Weierstrass curves, so letting one of
// those through would otherwise fail deep inside Sign with an opaque
// "curve does not support ECDSA" error.
func signerCurveType(s string) (hdkit.CurveType, error) {
	curveType, err := parseCurveType(s)
	if err != nil {
		return 0, err
	}
	switch curveType {
	case hdkit.CurveSecp256k1, hdkit.CurveNIST256P1:
		return curveType, nil
	default:
		return 0, fmt.Errorf("--curve %q does not support ECDSA signing, use secp256k1 or nist256p1", s)
	}
}

func signCmd() *cobra.Command {
	var (
		privHex   string
		digestHex string
		message   string
		curveFlag string
		hashFirst bool
		personal  bool
		tron      bool
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a digest or personal message with a raw private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			curveType, err := signerCurveType(curveFlag)
			if err != nil {
				return err
			}
			privBytes, err := hex.DecodeString(privHex)
			if err != nil {
				return fmt.Errorf("decoding --priv: %w", err)
			}
			priv, err := hdkit.PrivateKeyFromBytes(curveType, privBytes)
			if err != nil {
				return err
			}

			if personal {
				if message == "" {
					return fmt.Errorf("--message is required with --personal")
				}
				signFn := hdkit.SignPersonalMessage
				if tron {
					signFn = hdkit.SignTronMessage
				}
				sigWithV, err := signFn(priv, []byte(message))
				if err != nil {
					return err
				}
				logger.Info("signed personal message", zap.String("curve", curveFlag), zap.Bool("tron", tron))
				fmt.Println(hex.EncodeToString(sigWithV))
				return nil
			}

			if digestHex == "" {
				return fmt.Errorf("--digest is required unless --personal is set")
			}
			digest, err := hex.DecodeString(digestHex)
			if err != nil {
				return fmt.Errorf("decoding --digest: %w", err)
			}
			sig, err := hdkit.Sign(priv, digest, hashFirst)
			if err != nil {
				return err
			}
			logger.Info("signed digest", zap.String("curve", curveFlag))
			fmt.Println(hex.EncodeToString(sig.Bytes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&privHex, "priv", "", "hex-encoded raw private scalar")
	cmd.Flags().StringVar(&digestHex, "digest", "", "hex-encoded digest to sign")
	cmd.Flags().StringVar(&message, "message", "", "message to sign with --personal")
	cmd.Flags().StringVar(&curveFlag, "curve", "secp256k1", "secp256k1|nist256p1")
	cmd.Flags().BoolVar(&hashFirst, "hash-first", false, "SHA-256 the digest before signing")
	cmd.Flags().BoolVar(&personal, "personal", false, "sign --message with the EVM/Tron personal-message convention")
	cmd.Flags().BoolVar(&tron, "tron", false, "with --personal, use Tron's TIP-191 header instead of Ethereum's")
	cmd.MarkFlagRequired("priv")
	return cmd
}
