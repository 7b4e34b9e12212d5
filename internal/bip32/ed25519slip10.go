package bip32

import (
	"crypto/sha512"

	"filippo.io/edwards25519"

	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// ed25519Slip10Derivator implements SLIP-0010's ed25519 section:
// hardened-only derivation where the HMAC chain itself carries the
// 32-byte seed forward at each level (no scalar addition), and the
// actual signing scalar/public key is derived from that seed the same
// way a plain ed25519 private key is (RFC 8032 clamped SHA-512).
type ed25519Slip10Derivator struct{}

const ed25519MasterKey = "ed25519 seed"

// ed25519PublicFromSeed derives the public key RFC 8032 style: clamp
// the low half of SHA-512(seed) and multiply the base point by it.
// Reduction mod l (via SetUniformBytes, zero-padded to the 64 bytes it
// requires) leaves the resulting point unchanged versus using the raw
// clamped integer, since the base point has order l.
func ed25519PublicFromSeed(seed []byte) ([]byte, error) {
	h := sha512.Sum512(seed)
	clamped := make([]byte, 32)
	copy(clamped, h[:32])
	clamped[0] &= 248
	clamped[31] &= 127
	clamped[31] |= 64

	wide := make([]byte, 64)
	copy(wide, clamped)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		return nil, hdkerr.Wrap(hdkerr.InvalidKey, "bip32.ed25519PublicFromSeed", err)
	}
	p := edwards25519.NewIdentityPoint().ScalarBaseMult(s)
	return p.Bytes(), nil
}

func (ed25519Slip10Derivator) supportsPublicDerivation() bool { return false }

func (ed25519Slip10Derivator) masterFromSeed(seed []byte, versions NetVersions) (*ExtendedKey, error) {
	il, ir := hmacSHA512([]byte(ed25519MasterKey), seed)
	pub, err := ed25519PublicFromSeed(il)
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		curveType:  CurveEd25519Slip10,
		versions:   versions,
		depth:      0,
		parentFP:   [4]byte{},
		childIndex: 0,
		chainCode:  ir,
		privScalar: il,
		pubKey:     pub,
	}, nil
}

func (ed25519Slip10Derivator) ckdPriv(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	if parent.privScalar == nil {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPriv", "parent has no private key")
	}
	if index < HardenedOffset {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPriv", "ed25519-slip10 only supports hardened derivation")
	}

	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, parent.privScalar...)
	data = append(data, serializeIndex(index)...)

	il, ir := hmacSHA512(parent.chainCode, data)
	pub, err := ed25519PublicFromSeed(il)
	if err != nil {
		return nil, err
	}

	return &ExtendedKey{
		curveType:  parent.curveType,
		versions:   parent.versions,
		depth:      parent.depth + 1,
		parentFP:   Fingerprint(parent.pubKey),
		childIndex: index,
		chainCode:  ir,
		privScalar: il,
		pubKey:     pub,
	}, nil
}

func (ed25519Slip10Derivator) ckdPub(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPub", "ed25519-slip10 does not support public derivation")
}
