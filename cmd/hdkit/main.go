// Command hdkit is a thin CLI harness over the hdkit library
// (component I): it derives keys, signs digests, and renders/decodes
// addresses, but holds no state across invocations and performs no
// network I/O or persistence.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-hdkit/pkg/hdkit"
)

var logger *zap.Logger

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func parseCurveType(s string) (hdkit.CurveType, error) {
	switch s {
	case "secp256k1":
		return hdkit.CurveSecp256k1, nil
	case "nist256p1":
		return hdkit.CurveNIST256P1, nil
	case "ed25519-slip10":
		return hdkit.CurveEd25519Slip10, nil
	case "ed25519-kholaw":
		return hdkit.CurveEd25519Kholaw, nil
	case "cardano-byron-legacy":
		return hdkit.CurveCardanoByronLegacy, nil
	default:
		return 0, fmt.Errorf("unknown curve %q", s)
	}
}

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "hdkit",
		Short: "HD key derivation, signing, and address-codec utilities",
		Long:  "hdkit derives BIP-32 keys, signs digests, and renders or decodes chain addresses over a small set of supported curves.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(debug)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose development logging")

	rootCmd.AddCommand(deriveCmd())
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(addressCmd())
	rootCmd.AddCommand(decodeAddressCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hdkit:", err)
		os.Exit(1)
	}
}
