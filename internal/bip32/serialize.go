package bip32

import (
	"encoding/binary"

	"github.com/smallyu/go-hdkit/internal/codec/base58"
	"github.com/smallyu/go-hdkit/internal/crypto/curves"
	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

const (
	privateScalarTag  = 0x00
	extendedScalarTag = 0x01

	serializedHeaderLen = 4 + 1 + 4 + 4 + 32 // version, depth, parentFP, index, chainCode
)

// SerializeExtendedKey encodes k as Base58Check over the classic
// BIP-32 78-byte layout (version || depth || parent fingerprint ||
// index || chain code || key material). The key-material field is
// 0x00 || 32-byte scalar for ordinary private keys, the raw
// compressed point for public keys, or 0x01 || kL || kR (65 bytes) for
// the Cardano ed25519 variants' extended scalar — a superset of the
// standard layout, not a byte-identical rendition of it, per
// DESIGN.md's Open Question notes.
func SerializeExtendedKey(k *ExtendedKey) string {
	version := k.versions.Public
	var keyField []byte
	if k.IsPrivate() {
		version = k.versions.Private
		if len(k.privScalar) == 64 {
			keyField = append([]byte{extendedScalarTag}, k.privScalar...)
		} else {
			keyField = append([]byte{privateScalarTag}, k.privScalar...)
		}
	} else {
		keyField = k.pubKey
	}

	buf := make([]byte, 0, serializedHeaderLen+len(keyField))
	buf = append(buf, version[:]...)
	buf = append(buf, k.depth)
	buf = append(buf, k.parentFP[:]...)
	buf = append(buf, serializeIndex(k.childIndex)...)
	buf = append(buf, k.chainCode...)
	buf = append(buf, keyField...)
	return base58.CheckEncode(buf)
}

// ParseExtendedKey reverses SerializeExtendedKey. The 4-byte version
// prefix must exactly match versions.Private or versions.Public; any
// other prefix fails with hdkerr.InvalidExtendedKey (the strict
// enforcement decided in DESIGN.md's Open Questions).
func ParseExtendedKey(s string, curveType CurveType, versions NetVersions) (*ExtendedKey, error) {
	raw, err := base58.CheckDecode(s)
	if err != nil {
		return nil, hdkerr.Wrap(hdkerr.InvalidExtendedKey, "bip32.ParseExtendedKey", err)
	}
	if len(raw) < serializedHeaderLen+1 {
		return nil, hdkerr.New(hdkerr.InvalidLength, "bip32.ParseExtendedKey", "payload shorter than the extended-key header")
	}

	var version [4]byte
	copy(version[:], raw[:4])
	isPrivate := version == versions.Private
	isPublic := version == versions.Public
	if !isPrivate && !isPublic {
		return nil, hdkerr.New(hdkerr.InvalidExtendedKey, "bip32.ParseExtendedKey", "version prefix does not match the expected net versions")
	}

	depth := raw[4]
	var parentFP [4]byte
	copy(parentFP[:], raw[5:9])
	childIndex := binary.BigEndian.Uint32(raw[9:13])
	chainCode := append([]byte(nil), raw[13:45]...)
	keyField := raw[45:]

	var privScalar, pubKey []byte
	if isPrivate {
		if len(keyField) == 0 {
			return nil, hdkerr.New(hdkerr.InvalidExtendedKey, "bip32.ParseExtendedKey", "missing key material")
		}
		switch keyField[0] {
		case privateScalarTag:
			privScalar = append([]byte(nil), keyField[1:]...)
			if len(privScalar) != 32 {
				return nil, hdkerr.New(hdkerr.InvalidExtendedKey, "bip32.ParseExtendedKey", "unexpected private scalar length")
			}
		case extendedScalarTag:
			privScalar = append([]byte(nil), keyField[1:]...)
			if len(privScalar) != 64 {
				return nil, hdkerr.New(hdkerr.InvalidExtendedKey, "bip32.ParseExtendedKey", "unexpected extended scalar length")
			}
		default:
			return nil, hdkerr.New(hdkerr.InvalidExtendedKey, "bip32.ParseExtendedKey", "unknown private key tag")
		}
		pub, err := publicKeyFromPrivate(curveType, privScalar)
		if err != nil {
			return nil, err
		}
		pubKey = pub
	} else {
		pubKey = append([]byte(nil), keyField...)
	}

	return &ExtendedKey{
		curveType:  curveType,
		versions:   versions,
		depth:      depth,
		parentFP:   parentFP,
		childIndex: childIndex,
		chainCode:  chainCode,
		privScalar: privScalar,
		pubKey:     pubKey,
	}, nil
}

func publicKeyFromPrivate(curveType CurveType, privScalar []byte) ([]byte, error) {
	switch curveType {
	case CurveSecp256k1, CurveNIST256P1:
		var curveID curves.Type
		if curveType == CurveSecp256k1 {
			curveID = curves.Secp256k1
		} else {
			curveID = curves.NISTP256
		}
		curve := curves.ByType(curveID)
		scalar, err := curve.NewScalarFromBytes(privScalar)
		if err != nil {
			return nil, hdkerr.Wrap(hdkerr.InvalidKey, "bip32.publicKeyFromPrivate", err)
		}
		return curve.ScalarBaseMult(scalar).Bytes(), nil
	case CurveEd25519Slip10:
		return ed25519PublicFromSeed(privScalar)
	case CurveEd25519Kholaw, CurveCardanoByronLegacy:
		if len(privScalar) != 64 {
			return nil, hdkerr.New(hdkerr.InvalidKey, "bip32.publicKeyFromPrivate", "expected a 64-byte extended scalar")
		}
		return ed25519PublicFromScalarLE(privScalar[:32])
	default:
		return nil, hdkerr.New(hdkerr.InvalidArgument, "bip32.publicKeyFromPrivate", "unsupported curve type")
	}
}
