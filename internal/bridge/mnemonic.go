// Package bridge holds the small external-collaborator wrappers
// (component J/K) that sit outside the pure curve/key/signer/codec
// core: BIP-39 mnemonic-to-seed conversion and a UUIDv4 spot-check.
package bridge

import (
	"github.com/tyler-smith/go-bip39"

	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// SeedFromMnemonic validates mnemonic against the BIP-39 checksum and
// stretches it (with passphrase, PBKDF2-HMAC-SHA512) into the 64-byte
// seed bip32.MasterFromSeed expects.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, hdkerr.New(hdkerr.InvalidArgument, "bridge.SeedFromMnemonic", "mnemonic fails the BIP-39 checksum")
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, hdkerr.Wrap(hdkerr.InvalidArgument, "bridge.SeedFromMnemonic", err)
	}
	return seed, nil
}

// NewMnemonic generates a fresh BIP-39 mnemonic from bitSize bits of
// entropy (128, 160, 192, 224, or 256), the inverse of SeedFromMnemonic's
// validation step.
func NewMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", hdkerr.Wrap(hdkerr.InvalidArgument, "bridge.NewMnemonic", err)
	}
	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", hdkerr.Wrap(hdkerr.InvalidArgument, "bridge.NewMnemonic", err)
	}
	return words, nil
}
