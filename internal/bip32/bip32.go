// Package bip32 implements hierarchical deterministic key derivation
// (component F), polymorphic over the curve families internal/crypto/curves
// exposes plus the Cardano ed25519 variants that need their own
// clamped-scalar bookkeeping.
package bip32

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // fingerprint scheme is RIPEMD160(SHA-256(.)) per BIP-32

	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// CurveType is the closed set of key-derivation schemes this engine
// supports. Unlike curves.Type, it also covers the two Cardano ed25519
// variants, which are not plain SLIP-0010 and do not map onto a single
// curves.Curve singleton.
type CurveType int

const (
	CurveSecp256k1 CurveType = iota
	CurveNIST256P1
	CurveEd25519Slip10
	CurveEd25519Kholaw
	CurveCardanoByronLegacy
)

func (t CurveType) String() string {
	switch t {
	case CurveSecp256k1:
		return "secp256k1"
	case CurveNIST256P1:
		return "nist256p1"
	case CurveEd25519Slip10:
		return "ed25519-slip10"
	case CurveEd25519Kholaw:
		return "ed25519-kholaw"
	case CurveCardanoByronLegacy:
		return "cardano-byron-legacy"
	default:
		return "unknown"
	}
}

// HardenedOffset is added to a derivation index to mark it hardened,
// per BIP-32.
const HardenedOffset uint32 = 0x80000000

// NetVersions is the pluggable 4-byte version prefix pair an extended
// key is serialized with. The engine treats it as ordinary data, not a
// hardcoded constant, so callers can target any chain's xprv/xpub
// convention.
type NetVersions struct {
	Private [4]byte
	Public  [4]byte
}

// BitcoinMainNet is the standard Bitcoin mainnet version pair
// (xprv/xpub), the default a caller reaches for first.
var BitcoinMainNet = NetVersions{
	Private: [4]byte{0x04, 0x88, 0xad, 0xe4},
	Public:  [4]byte{0x04, 0x88, 0xb2, 0x1e},
}

// ExtendedKey is an immutable BIP-32 node: a key plus the chain code
// and path metadata needed to derive its children. privScalar is nil
// for a public-only (neutered) key. Its length is curve-dependent: 32
// bytes for secp256k1/NIST P-256/ed25519-slip10, 64 bytes (kL || kR)
// for the Cardano ed25519 variants.
type ExtendedKey struct {
	curveType  CurveType
	versions   NetVersions
	depth      uint8
	parentFP   [4]byte
	childIndex uint32
	chainCode  []byte
	privScalar []byte
	pubKey     []byte
}

func (k *ExtendedKey) CurveType() CurveType     { return k.curveType }
func (k *ExtendedKey) Versions() NetVersions    { return k.versions }
func (k *ExtendedKey) Depth() uint8             { return k.depth }
func (k *ExtendedKey) ParentFingerprint() [4]byte { return k.parentFP }
func (k *ExtendedKey) ChildIndex() uint32       { return k.childIndex }
func (k *ExtendedKey) ChainCode() []byte        { return append([]byte(nil), k.chainCode...) }
func (k *ExtendedKey) IsPrivate() bool          { return k.privScalar != nil }
func (k *ExtendedKey) PublicKeyBytes() []byte   { return append([]byte(nil), k.pubKey...) }

// PrivateKeyBytes returns the raw private key material: nil if k has
// been neutered to a public-only key.
func (k *ExtendedKey) PrivateKeyBytes() []byte {
	if k.privScalar == nil {
		return nil
	}
	return append([]byte(nil), k.privScalar...)
}

// Neuter returns the public-only counterpart of k. Already-public keys
// are returned unchanged.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	if k.privScalar == nil {
		return k
	}
	neutered := *k
	neutered.privScalar = nil
	return &neutered
}

// Fingerprint is the first 4 bytes of RIPEMD160(SHA-256(compressed
// public key)), the identifier BIP-32 uses for a key's own hash (as
// opposed to ParentFingerprint, which stores the parent's). Weierstrass
// curves use this directly; the Cardano variants use the same recipe
// over their ed25519 public key as their "curve-specific analog".
func Fingerprint(pubKey []byte) [4]byte {
	sum := sha256.Sum256(pubKey)
	ripe := ripemd160.New()
	ripe.Write(sum[:])
	digest := ripe.Sum(nil)
	var fp [4]byte
	copy(fp[:], digest[:4])
	return fp
}

func derivatorFor(t CurveType) (derivator, error) {
	switch t {
	case CurveSecp256k1:
		return secp256k1Derivator, nil
	case CurveNIST256P1:
		return nistP256Derivator, nil
	case CurveEd25519Slip10:
		return ed25519Slip10Derivator{}, nil
	case CurveEd25519Kholaw:
		return ed25519KholawDerivator{}, nil
	case CurveCardanoByronLegacy:
		return cardanoByronLegacyDerivator{}, nil
	default:
		return nil, hdkerr.New(hdkerr.InvalidArgument, "bip32.derivatorFor", "unsupported curve type")
	}
}

// MasterFromSeed derives the master extended key for curveType from
// seed, per component F's from_seed contract.
func MasterFromSeed(curveType CurveType, seed []byte, versions NetVersions) (*ExtendedKey, error) {
	d, err := derivatorFor(curveType)
	if err != nil {
		return nil, err
	}
	return d.masterFromSeed(seed, versions)
}

// CKDPriv derives the child of parent at index, advancing the caller's
// view of "the next index to try" is the caller's responsibility: per
// BIP-32, an invalid intermediate value (Il >= n or a zero child
// scalar) is a DerivationError, not a panic, so callers retry with
// index+1 themselves.
func CKDPriv(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	d, err := derivatorFor(parent.curveType)
	if err != nil {
		return nil, err
	}
	return d.ckdPriv(parent, index)
}

// CKDPub derives a non-hardened public child of parent. It fails with
// hdkerr.DerivationError if index is hardened or parent's curve does
// not support public derivation (pure ed25519-slip10).
func CKDPub(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	d, err := derivatorFor(parent.curveType)
	if err != nil {
		return nil, err
	}
	if !d.supportsPublicDerivation() {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.CKDPub", parent.curveType.String()+" does not support public derivation")
	}
	return d.ckdPub(parent, index)
}

// Derive walks path (a sequence of indices, hardened bits already
// applied) from parent, using CKDPriv if parent holds a private key
// and CKDPub otherwise.
func Derive(parent *ExtendedKey, path []uint32) (*ExtendedKey, error) {
	current := parent
	for _, index := range path {
		var next *ExtendedKey
		var err error
		if current.IsPrivate() {
			next, err = CKDPriv(current, index)
		} else {
			next, err = CKDPub(current, index)
		}
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}
