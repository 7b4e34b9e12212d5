package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"math/big"

	"github.com/smallyu/go-hdkit/internal/crypto/curves"
	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// derivator is the per-curve capability record driving master and
// child key generation (component F's "Derivator dispatch").
type derivator interface {
	masterFromSeed(seed []byte, versions NetVersions) (*ExtendedKey, error)
	ckdPriv(parent *ExtendedKey, index uint32) (*ExtendedKey, error)
	ckdPub(parent *ExtendedKey, index uint32) (*ExtendedKey, error)
	supportsPublicDerivation() bool
}

func hmacSHA512(key, data []byte) (il, ir []byte) {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

func serializeIndex(index uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, index)
	return buf
}

func padTo32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// weierstrassDerivator implements the classic BIP-32 HMAC-SHA512
// recipe, shared by secp256k1 and NIST P-256 (they differ only in
// curve and master-key label).
type weierstrassDerivator struct {
	curveType CurveType
	curve     curves.Curve
	masterKey []byte
}

var secp256k1Derivator = &weierstrassDerivator{
	curveType: CurveSecp256k1,
	curve:     curves.ByType(curves.Secp256k1),
	masterKey: []byte("Bitcoin seed"),
}

var nistP256Derivator = &weierstrassDerivator{
	curveType: CurveNIST256P1,
	curve:     curves.ByType(curves.NISTP256),
	masterKey: []byte("Nist256p1 seed"),
}

func (d *weierstrassDerivator) supportsPublicDerivation() bool { return true }

func (d *weierstrassDerivator) masterFromSeed(seed []byte, versions NetVersions) (*ExtendedKey, error) {
	il, ir := hmacSHA512(d.masterKey, seed)
	for {
		scalar := new(big.Int).SetBytes(il)
		if scalar.Sign() != 0 && scalar.Cmp(d.curve.Order()) < 0 {
			break
		}
		il, ir = hmacSHA512(d.masterKey, il)
	}

	scalar := new(big.Int).SetBytes(il)
	pub := d.curve.ScalarBaseMult(d.curve.NewScalarFromBigInt(scalar))

	return &ExtendedKey{
		curveType:  d.curveType,
		versions:   versions,
		depth:      0,
		parentFP:   [4]byte{},
		childIndex: 0,
		chainCode:  ir,
		privScalar: padTo32(il),
		pubKey:     pub.Bytes(),
	}, nil
}

func (d *weierstrassDerivator) ckdPriv(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	if parent.privScalar == nil {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPriv", "parent has no private key")
	}
	hardened := index >= HardenedOffset

	var data []byte
	if hardened {
		data = make([]byte, 0, 1+32+4)
		data = append(data, 0x00)
		data = append(data, parent.privScalar...)
	} else {
		data = make([]byte, 0, len(parent.pubKey)+4)
		data = append(data, parent.pubKey...)
	}
	data = append(data, serializeIndex(index)...)

	il, ir := hmacSHA512(parent.chainCode, data)
	ilNum := new(big.Int).SetBytes(il)
	if ilNum.Cmp(d.curve.Order()) >= 0 {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPriv", "Il out of range, advance to next index")
	}

	parentNum := new(big.Int).SetBytes(parent.privScalar)
	childNum := new(big.Int).Add(ilNum, parentNum)
	childNum.Mod(childNum, d.curve.Order())
	if childNum.Sign() == 0 {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPriv", "child scalar is zero, advance to next index")
	}

	pub := d.curve.ScalarBaseMult(d.curve.NewScalarFromBigInt(childNum))

	return &ExtendedKey{
		curveType:  parent.curveType,
		versions:   parent.versions,
		depth:      parent.depth + 1,
		parentFP:   Fingerprint(parent.pubKey),
		childIndex: index,
		chainCode:  ir,
		privScalar: padTo32(childNum.Bytes()),
		pubKey:     pub.Bytes(),
	}, nil
}

func (d *weierstrassDerivator) ckdPub(parent *ExtendedKey, index uint32) (*ExtendedKey, error) {
	if index >= HardenedOffset {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPub", "hardened derivation requires private key")
	}

	data := make([]byte, 0, len(parent.pubKey)+4)
	data = append(data, parent.pubKey...)
	data = append(data, serializeIndex(index)...)

	il, ir := hmacSHA512(parent.chainCode, data)
	ilNum := new(big.Int).SetBytes(il)
	if ilNum.Sign() == 0 || ilNum.Cmp(d.curve.Order()) >= 0 {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPub", "Il out of range, advance to next index")
	}

	parentPoint, err := d.curve.NewPointFromBytes(parent.pubKey)
	if err != nil {
		return nil, hdkerr.Wrap(hdkerr.InvalidKey, "bip32.ckdPub", err)
	}
	delta := d.curve.ScalarBaseMult(d.curve.NewScalarFromBigInt(ilNum))
	childPoint := parentPoint.Add(delta)
	if childPoint.IsIdentity() {
		return nil, hdkerr.New(hdkerr.DerivationError, "bip32.ckdPub", "child point is identity, advance to next index")
	}

	return &ExtendedKey{
		curveType:  parent.curveType,
		versions:   parent.versions,
		depth:      parent.depth + 1,
		parentFP:   Fingerprint(parent.pubKey),
		childIndex: index,
		chainCode:  ir,
		privScalar: nil,
		pubKey:     childPoint.Bytes(),
	}, nil
}
