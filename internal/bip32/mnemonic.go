package bip32

import "github.com/smallyu/go-hdkit/internal/bridge"

// Mnemonic bridges a BIP-39 mnemonic phrase straight to a master
// extended key, supplementing the seed-only entry point with the
// wallet-facing path real callers use.
func Mnemonic(curveType CurveType, words, passphrase string, versions NetVersions) (*ExtendedKey, error) {
	seed, err := bridge.SeedFromMnemonic(words, passphrase)
	if err != nil {
		return nil, err
	}
	return MasterFromSeed(curveType, seed, versions)
}
