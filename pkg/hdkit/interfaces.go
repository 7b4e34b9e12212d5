// Package hdkit is this module's public capability surface (component
// D/E/F/G's external-facing entry point): a thin facade over the
// internal curve, key, signer, BIP-32, address-codec, and
// mnemonic-bridge packages so a caller never has to import internal/...
// directly to use the library.
package hdkit

import (
	"github.com/smallyu/go-hdkit/internal/addresscodec"
	"github.com/smallyu/go-hdkit/internal/bip32"
	"github.com/smallyu/go-hdkit/internal/bridge"
	"github.com/smallyu/go-hdkit/internal/crypto/curves"
	"github.com/smallyu/go-hdkit/internal/crypto/keys"
	"github.com/smallyu/go-hdkit/internal/crypto/signer"
)

// Re-exported types, so a caller of this package never needs an
// internal/... import to spell a type this package's functions return.
type (
	CurveType     = bip32.CurveType
	NetVersions   = bip32.NetVersions
	ExtendedKey   = bip32.ExtendedKey
	PrivateKey    = keys.PrivateKey
	PublicKey     = keys.PublicKey
	Signature     = signer.Signature
	RecoveryID    = signer.RecoveryID
	BitcoinParams = addresscodec.BitcoinParams
	MoneroParams  = addresscodec.MoneroParams
	AddressParams = addresscodec.Params
)

// Curve types this module derives and signs over.
const (
	CurveSecp256k1          = bip32.CurveSecp256k1
	CurveNIST256P1          = bip32.CurveNIST256P1
	CurveEd25519Slip10      = bip32.CurveEd25519Slip10
	CurveEd25519Kholaw      = bip32.CurveEd25519Kholaw
	CurveCardanoByronLegacy = bip32.CurveCardanoByronLegacy
)

// HardenedOffset marks a BIP-32 path index as hardened.
const HardenedOffset = bip32.HardenedOffset

// BitcoinMainNet is the standard xprv/xpub version-byte pair.
var BitcoinMainNet = bip32.BitcoinMainNet

// CurveOf returns the internal curve descriptor backing t, for
// callers that need to validate or construct raw keys (e.g. before
// calling Sign/Verify directly with a curve they already hold).
func CurveOf(t CurveType) curves.Curve {
	switch t {
	case bip32.CurveSecp256k1:
		return curves.ByType(curves.Secp256k1)
	case bip32.CurveNIST256P1:
		return curves.ByType(curves.NISTP256)
	default:
		return curves.ByType(curves.Ed25519)
	}
}

// PrivateKeyFromBytes parses a raw scalar for curveType.
func PrivateKeyFromBytes(curveType CurveType, b []byte) (*PrivateKey, error) {
	return keys.PrivateFromBytes(CurveOf(curveType), b)
}

// PublicKeyFromBytes parses a compressed (or, for Weierstrass curves,
// uncompressed) point for curveType.
func PublicKeyFromBytes(curveType CurveType, b []byte) (*PublicKey, error) {
	return keys.PublicFromBytes(CurveOf(curveType), b)
}

// PublicKeyFromPrivate derives the public key matching priv.
func PublicKeyFromPrivate(priv *PrivateKey) *PublicKey {
	return keys.PublicFromPrivate(priv)
}

// MasterFromSeed derives the master extended key for curveType from a
// raw BIP-32 seed.
func MasterFromSeed(curveType CurveType, seed []byte, versions NetVersions) (*ExtendedKey, error) {
	return bip32.MasterFromSeed(curveType, seed, versions)
}

// MasterFromMnemonic bridges a BIP-39 mnemonic to a master extended
// key in one call.
func MasterFromMnemonic(curveType CurveType, mnemonic, passphrase string, versions NetVersions) (*ExtendedKey, error) {
	return bip32.Mnemonic(curveType, mnemonic, passphrase, versions)
}

// ParsePath parses a BIP-32 path string (e.g. "m/44'/0'/0'/0/0") into
// its raw uint32 indices.
func ParsePath(path string) ([]uint32, error) {
	return bip32.ParsePath(path)
}

// Derive walks parent through path, using private or public child
// derivation depending on whether parent itself holds a private key.
func Derive(parent *ExtendedKey, path []uint32) (*ExtendedKey, error) {
	return bip32.Derive(parent, path)
}

// CKDPriv derives a single private child at index.
func CKDPriv(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	return bip32.CKDPriv(parent, index)
}

// CKDPub derives a single public-only child at index.
func CKDPub(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	return bip32.CKDPub(parent, index)
}

// SerializeExtendedKey renders k as a Base58Check string.
func SerializeExtendedKey(k *ExtendedKey) string {
	return bip32.SerializeExtendedKey(k)
}

// ParseExtendedKey reverses SerializeExtendedKey.
func ParseExtendedKey(s string, curveType CurveType, versions NetVersions) (*ExtendedKey, error) {
	return bip32.ParseExtendedKey(s, curveType, versions)
}

// NewMnemonic generates a fresh BIP-39 mnemonic of the given entropy
// bit size (128, 160, 192, 224, or 256).
func NewMnemonic(bitSize int) (string, error) {
	return bridge.NewMnemonic(bitSize)
}

// NewRequestID returns a fresh UUIDv4 string, for callers that want a
// correlation ID alongside a derivation or signing call.
func NewRequestID() string {
	return bridge.NewRequestID()
}

// Sign produces a deterministic, low-S ECDSA signature over digest
// (or SHA-256(digest) when hashFirst is set) using priv.
func Sign(priv *PrivateKey, digest []byte, hashFirst bool) (*Signature, error) {
	return signer.Sign(priv, digest, hashFirst)
}

// Verify checks sig against digest under pub.
func Verify(pub *PublicKey, digest []byte, sig *Signature, hashFirst bool) (bool, error) {
	return signer.Verify(pub, digest, sig, hashFirst)
}

// ParseSignature decodes a fixed-width r||s signature for curveType.
func ParseSignature(curveType CurveType, b []byte) (*Signature, error) {
	return signer.ParseSignature(CurveOf(curveType), b)
}

// RecoverPublicKey reconstructs the public key implied by sig, digest,
// and a specific recovery id.
func RecoverPublicKey(curveType CurveType, digest []byte, sig *Signature, recid RecoveryID) (*PublicKey, error) {
	return signer.RecoverPublicKey(CurveOf(curveType), digest, sig, recid)
}

// MatchRecoveryID finds the recovery id matching expected.
func MatchRecoveryID(curveType CurveType, digest []byte, sig *Signature, expected *PublicKey) (RecoveryID, error) {
	return signer.MatchRecoveryID(CurveOf(curveType), digest, sig, expected)
}

// SignPersonalMessage signs message under the EVM "personal_sign"
// convention (Ethereum header), appending the recovery byte;
// SignTronMessage is the Tron variant.
func SignPersonalMessage(priv *PrivateKey, message []byte) ([]byte, error) {
	return signer.SignPersonalMessage(priv, message)
}

// VerifyPersonalMessage recovers the signer of sigWithV over message
// and reports whether it matches expected.
func VerifyPersonalMessage(curveType CurveType, expected *PublicKey, message, sigWithV []byte) (bool, error) {
	return signer.VerifyPersonalMessage(CurveOf(curveType), expected, message, sigWithV)
}

// SignTronMessage signs message under Tron's TIP-191 header instead of
// the EVM one SignPersonalMessage uses.
func SignTronMessage(priv *PrivateKey, message []byte) ([]byte, error) {
	return signer.SignTronMessage(priv, message)
}

// VerifyTronMessage is VerifyPersonalMessage under Tron's TIP-191
// header instead of the EVM one.
func VerifyTronMessage(curveType CurveType, expected *PublicKey, message, sigWithV []byte) (bool, error) {
	return signer.VerifyTronMessage(CurveOf(curveType), expected, message, sigWithV)
}

// defaultRegistry is built once and never mutated, matching the
// curve descriptors' read-only-singleton pattern.
var defaultRegistry = addresscodec.DefaultRegistry()

// DefaultAddressRegistry returns the shared address-codec registry
// with every chain this module implements (currently "bitcoin" and
// "monero") already registered.
func DefaultAddressRegistry() *addresscodec.Registry {
	return defaultRegistry
}

// EncodeAddress renders pubKeyBytes as a chain address via the
// default address-codec registry.
func EncodeAddress(chainTag string, pubKeyBytes []byte, params AddressParams) (string, error) {
	return defaultRegistry.Encode(chainTag, pubKeyBytes, params)
}

// DecodeAddress reverses EncodeAddress.
func DecodeAddress(chainTag, addr string, params AddressParams) ([]byte, error) {
	return defaultRegistry.Decode(chainTag, addr, params)
}
