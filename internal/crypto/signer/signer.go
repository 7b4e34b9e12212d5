// Package signer implements deterministic ECDSA signing and
// verification (component E) over the Weierstrass curves (secp256k1,
// NIST P-256) exposed by internal/crypto/curves, plus EVM/Tron-style
// public-key recovery and personal-message signing.
//
// ed25519 is a curve this module uses for BIP-32 derivation only; it
// is not a signer here, since EdDSA's signing equation differs from
// plain ECDSA and is out of this package's scope.
package signer

import (
	"crypto/sha256"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/smallyu/go-hdkit/internal/crypto/curves"
	"github.com/smallyu/go-hdkit/internal/crypto/keys"
	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// RecoveryID is the 2-bit tag (0..3) identifying which of the
// candidate R points a signature's recovery corresponds to: bit 0 is
// the Y-coordinate parity, bit 1 says whether the x-coordinate needed
// the curve order added back on (only relevant when the order is
// close to the field size, as with secp256k1).
type RecoveryID byte

// Signature is an (r, s) pair tagged with the curve it was produced
// over. Sign and ParseSignature keep r and s in [1, order-1]; Sign
// always low-S normalizes s, while ParseSignature accepts any s in
// that range.
type Signature struct {
	curve curves.Curve
	r, s  *big.Int
}

// R returns a copy of the signature's r value.
func (sig *Signature) R() *big.Int { return new(big.Int).Set(sig.r) }

// S returns a copy of the signature's s value.
func (sig *Signature) S() *big.Int { return new(big.Int).Set(sig.s) }

// Bytes returns the fixed-width r||s encoding, each half padded to the
// curve's scalar length.
func (sig *Signature) Bytes() []byte {
	n := sig.curve.ScalarLen()
	out := make([]byte, 2*n)
	copy(out[:n], padTo(sig.r.Bytes(), n))
	copy(out[n:], padTo(sig.s.Bytes(), n))
	return out
}

// ParseSignature decodes a fixed-width r||s signature for curve,
// rejecting either half outside [1, order-1].
func ParseSignature(curve curves.Curve, b []byte) (*Signature, error) {
	n := curve.ScalarLen()
	if len(b) != 2*n {
		return nil, hdkerr.New(hdkerr.InvalidSignature, "signer.ParseSignature", "signature must be 2*curve.ScalarLen() bytes")
	}
	order := curve.Order()
	r := new(big.Int).SetBytes(b[:n])
	s := new(big.Int).SetBytes(b[n:])
	if r.Sign() <= 0 || r.Cmp(order) >= 0 || s.Sign() <= 0 || s.Cmp(order) >= 0 {
		return nil, hdkerr.New(hdkerr.InvalidSignature, "signer.ParseSignature", "r or s outside [1, order-1]")
	}
	return &Signature{curve: curve, r: r, s: s}, nil
}

// affinePoint is satisfied by the Weierstrass point implementations in
// internal/crypto/curves; ed25519 points do not implement it, which is
// how Sign/Verify reject ed25519 keys without a curve-type switch.
type affinePoint interface {
	Affine() (x, y []byte)
}

func pointX(p curves.Point, order *big.Int) (*big.Int, error) {
	ap, ok := p.(affinePoint)
	if !ok {
		return nil, hdkerr.New(hdkerr.InvalidArgument, "signer", "curve does not support ECDSA (no affine coordinates)")
	}
	x, _ := ap.Affine()
	r := new(big.Int).SetBytes(x)
	r.Mod(r, order)
	return r, nil
}

// Sign produces a deterministic, low-S ECDSA signature over digest
// using priv. If hashFirst, digest is first replaced with
// SHA-256(digest). The produced signature is self-verified against
// priv's public key before being returned.
func Sign(priv *keys.PrivateKey, digest []byte, hashFirst bool) (*Signature, error) {
	curve := priv.Curve()
	if hashFirst {
		h := sha256.Sum256(digest)
		digest = h[:]
	}
	if len(digest) != curve.ScalarLen() {
		return nil, hdkerr.New(hdkerr.InvalidDigest, "signer.Sign", "digest length must equal curve scalar length")
	}

	order := curve.Order()
	d := priv.Scalar().BigInt()
	z := new(big.Int).SetBytes(digest)

	gen := newRFC6979Generator(order, curve.ScalarLen(), padTo(d.Bytes(), curve.ScalarLen()), digest)

	for {
		k := gen.next()
		kScalar := curve.NewScalarFromBigInt(k)
		if kScalar.IsZero() {
			continue
		}
		R := curve.ScalarBaseMult(kScalar)
		r, err := pointX(R, order)
		if err != nil {
			return nil, hdkerr.Wrap(hdkerr.InvalidArgument, "signer.Sign", err)
		}
		if r.Sign() == 0 {
			continue
		}

		kInv := new(big.Int).ModInverse(k, order)
		if kInv == nil {
			continue
		}
		s := new(big.Int).Mul(r, d)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, order)
		if s.Sign() == 0 {
			continue
		}

		half := new(big.Int).Rsh(order, 1)
		if s.Cmp(half) > 0 {
			s.Sub(order, s)
		}

		sig := &Signature{curve: curve, r: r, s: s}

		pub := keys.PublicFromPrivate(priv)
		ok, verr := Verify(pub, digest, sig, false)
		if verr != nil || !ok {
			return nil, hdkerr.New(hdkerr.SignatureVerificationFailed, "signer.Sign", "self-verification of produced signature failed")
		}
		return sig, nil
	}
}

// Verify checks sig against digest under pub. It never returns an
// error for an ordinary invalid signature, only for malformed input
// (wrong digest length); a cryptographically invalid signature simply
// yields (false, nil).
func Verify(pub *keys.PublicKey, digest []byte, sig *Signature, hashFirst bool) (bool, error) {
	curve := pub.Curve()
	if hashFirst {
		h := sha256.Sum256(digest)
		digest = h[:]
	}
	if len(digest) != curve.ScalarLen() {
		return false, hdkerr.New(hdkerr.InvalidDigest, "signer.Verify", "digest length must equal curve scalar length")
	}

	order := curve.Order()
	if sig.r.Sign() <= 0 || sig.r.Cmp(order) >= 0 || sig.s.Sign() <= 0 || sig.s.Cmp(order) >= 0 {
		return false, nil
	}

	z := new(big.Int).SetBytes(digest)
	sInv := new(big.Int).ModInverse(sig.s, order)
	if sInv == nil {
		return false, nil
	}
	u1 := new(big.Int).Mul(z, sInv)
	u1.Mod(u1, order)
	u2 := new(big.Int).Mul(sig.r, sInv)
	u2.Mod(u2, order)

	p1 := curve.ScalarBaseMult(curve.NewScalarFromBigInt(u1))
	p2 := pub.Point().ScalarMult(curve.NewScalarFromBigInt(u2))
	sum := p1.Add(p2)
	if sum.IsIdentity() {
		return false, nil
	}

	x, err := pointX(sum, order)
	if err != nil {
		return false, hdkerr.Wrap(hdkerr.InvalidArgument, "signer.Verify", err)
	}
	return x.Cmp(sig.r) == 0, nil
}

// RecoverPublicKey reconstructs the public key implied by sig, digest,
// and a specific recovery id. Callers that were not given an explicit
// recovery id should use MatchRecoveryID instead.
func RecoverPublicKey(curve curves.Curve, digest []byte, sig *Signature, recid RecoveryID) (*keys.PublicKey, error) {
	if recid > 3 {
		return nil, hdkerr.New(hdkerr.InvalidArgument, "signer.RecoverPublicKey", "recovery id must be in 0..3")
	}
	order := curve.Order()

	x := new(big.Int).Set(sig.r)
	if recid&0x02 != 0 {
		x.Add(x, order)
	}
	prefix := byte(0x02)
	if recid&0x01 != 0 {
		prefix = 0x03
	}
	compressed := append([]byte{prefix}, padTo(x.Bytes(), curve.ScalarLen())...)

	rPoint, err := curve.NewPointFromBytes(compressed)
	if err != nil {
		return nil, hdkerr.Wrap(hdkerr.InvalidSignature, "signer.RecoverPublicKey", err)
	}

	rInv := new(big.Int).ModInverse(sig.r, order)
	if rInv == nil {
		return nil, hdkerr.New(hdkerr.InvalidSignature, "signer.RecoverPublicKey", "r has no inverse mod order")
	}

	z := new(big.Int).SetBytes(digest)
	negOne := new(big.Int).Sub(order, big.NewInt(1))

	sR := rPoint.ScalarMult(curve.NewScalarFromBigInt(sig.s))
	zG := curve.ScalarBaseMult(curve.NewScalarFromBigInt(z))
	negZG := zG.ScalarMult(curve.NewScalarFromBigInt(negOne))

	q := sR.Add(negZG).ScalarMult(curve.NewScalarFromBigInt(rInv))
	if q.IsIdentity() {
		return nil, hdkerr.New(hdkerr.InvalidSignature, "signer.RecoverPublicKey", "recovered point is the identity")
	}
	return keys.PublicFromPoint(curve, q), nil
}

// MatchRecoveryID iterates recovery ids 0..3, returning the first one
// whose reconstructed key equals expected.
func MatchRecoveryID(curve curves.Curve, digest []byte, sig *Signature, expected *keys.PublicKey) (RecoveryID, error) {
	for id := RecoveryID(0); id <= 3; id++ {
		pub, err := RecoverPublicKey(curve, digest, sig, id)
		if err != nil {
			continue
		}
		if pub.Point().Equal(expected.Point()) {
			return id, nil
		}
	}
	return 0, hdkerr.New(hdkerr.InvalidSignature, "signer.MatchRecoveryID", "no recovery id reconstructs the expected key")
}

// personalMessagePrefix is the EVM "personal_sign" convention.
// tronMessagePrefix is Tron's equivalent (TIP-191): same framing, a
// different header string. Both go through personalMessageDigest and
// the exported sign/verify pairs below.
const (
	personalMessagePrefix = "\x19Ethereum Signed Message:\n"
	tronMessagePrefix     = "\x19TRON Signed Message:\n"
)

func personalMessageDigest(prefix string, message []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(prefix))
	h.Write([]byte(itoa(len(message))))
	h.Write(message)
	sum := h.Sum(nil)
	return sum
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// signMessageWithPrefix hashes message under prefix and Keccak-256,
// signs the result, and appends a 1-byte v = 27 + recovery_id to the
// fixed-width signature.
func signMessageWithPrefix(priv *keys.PrivateKey, prefix string, message []byte) ([]byte, error) {
	digest := personalMessageDigest(prefix, message)
	sig, err := Sign(priv, digest, false)
	if err != nil {
		return nil, err
	}
	pub := keys.PublicFromPrivate(priv)
	recid, err := MatchRecoveryID(priv.Curve(), digest, sig, pub)
	if err != nil {
		return nil, err
	}
	return append(sig.Bytes(), byte(27+recid)), nil
}

// verifyMessageWithPrefix recovers the signer of sigWithV over message
// under prefix and reports whether it matches expected.
func verifyMessageWithPrefix(curve curves.Curve, prefix string, expected *keys.PublicKey, message, sigWithV []byte) (bool, error) {
	n := curve.ScalarLen()
	if len(sigWithV) != 2*n+1 {
		return false, hdkerr.New(hdkerr.InvalidSignature, "signer.VerifyPersonalMessage", "signature must be 2*curve.ScalarLen()+1 bytes")
	}
	sig, err := ParseSignature(curve, sigWithV[:2*n])
	if err != nil {
		return false, err
	}
	v := sigWithV[2*n]
	if v < 27 || v > 30 {
		return false, hdkerr.New(hdkerr.InvalidSignature, "signer.VerifyPersonalMessage", "v byte out of EVM range")
	}
	digest := personalMessageDigest(prefix, message)
	recovered, err := RecoverPublicKey(curve, digest, sig, RecoveryID(v-27))
	if err != nil {
		return false, err
	}
	return recovered.Point().Equal(expected.Point()), nil
}

// SignPersonalMessage hashes message with the EVM "personal_sign"
// prefix and Keccak-256, signs the result, and appends a 1-byte
// v = 27 + recovery_id to the fixed-width signature.
func SignPersonalMessage(priv *keys.PrivateKey, message []byte) ([]byte, error) {
	return signMessageWithPrefix(priv, personalMessagePrefix, message)
}

// VerifyPersonalMessage recovers the signer of sigWithV over message
// and reports whether it matches expected.
func VerifyPersonalMessage(curve curves.Curve, expected *keys.PublicKey, message, sigWithV []byte) (bool, error) {
	return verifyMessageWithPrefix(curve, personalMessagePrefix, expected, message, sigWithV)
}

// SignTronMessage is SignPersonalMessage under Tron's TIP-191 header
// instead of the EVM one.
func SignTronMessage(priv *keys.PrivateKey, message []byte) ([]byte, error) {
	return signMessageWithPrefix(priv, tronMessagePrefix, message)
}

// VerifyTronMessage is VerifyPersonalMessage under Tron's TIP-191
// header instead of the EVM one.
func VerifyTronMessage(curve curves.Curve, expected *keys.PublicKey, message, sigWithV []byte) (bool, error) {
	return verifyMessageWithPrefix(curve, tronMessagePrefix, expected, message, sigWithV)
}
