// Package keys wraps the curves package's opaque Scalar/Point types
// into the curve-tagged private/public key values (component D) that
// the signer and bip32 packages build on.
package keys

import (
	"github.com/smallyu/go-hdkit/internal/crypto/curves"
	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// PrivateKey is an immutable scalar tagged with the curve it belongs
// to. The zero value is not valid; construct via PrivateFromBytes.
type PrivateKey struct {
	curve curves.Curve
	s     curves.Scalar
}

// PublicKey is an immutable point tagged with the curve it belongs to.
type PublicKey struct {
	curve curves.Curve
	p     curves.Point
}

// PrivateFromBytes parses a raw scalar for curve. It fails with
// hdkerr.InvalidKey if len(b) != curve.ScalarLen() or the scalar is
// outside [1, order-1].
func PrivateFromBytes(curve curves.Curve, b []byte) (*PrivateKey, error) {
	s, err := curve.NewScalarFromBytes(b)
	if err != nil {
		return nil, hdkerr.Wrap(hdkerr.InvalidKey, "keys.PrivateFromBytes", err)
	}
	return &PrivateKey{curve: curve, s: s}, nil
}

// PublicFromBytes parses a compressed or uncompressed point for curve.
// It fails with hdkerr.InvalidKey on wrong length, an off-curve point,
// the identity, or (for ed25519) a low-order point.
func PublicFromBytes(curve curves.Curve, b []byte) (*PublicKey, error) {
	p, err := curve.NewPointFromBytes(b)
	if err != nil {
		return nil, hdkerr.Wrap(hdkerr.InvalidKey, "keys.PublicFromBytes", err)
	}
	return &PublicKey{curve: curve, p: p}, nil
}

// PublicFromPrivate deterministically derives the public key matching
// priv by multiplying the curve's base point by priv's scalar.
func PublicFromPrivate(priv *PrivateKey) *PublicKey {
	return &PublicKey{curve: priv.curve, p: priv.curve.ScalarBaseMult(priv.s)}
}

// PrivateFromScalar wraps an already-validated curves.Scalar, for
// callers that compute a scalar directly through curve arithmetic
// instead of parsing it from bytes.
func PrivateFromScalar(curve curves.Curve, s curves.Scalar) *PrivateKey {
	return &PrivateKey{curve: curve, s: s}
}

// PublicFromPoint wraps an already-validated curves.Point, for callers
// that compute a child or recovered point directly through curve
// arithmetic instead of parsing it from bytes.
func PublicFromPoint(curve curves.Curve, p curves.Point) *PublicKey {
	return &PublicKey{curve: curve, p: p}
}

// Curve reports the curve a key was constructed against.
func (priv *PrivateKey) Curve() curves.Curve { return priv.curve }
func (pub *PublicKey) Curve() curves.Curve   { return pub.curve }

// Scalar exposes the underlying curves.Scalar for packages (such as
// signer) that need to perform curve arithmetic directly.
func (priv *PrivateKey) Scalar() curves.Scalar { return priv.s }

// Point exposes the underlying curves.Point.
func (pub *PublicKey) Point() curves.Point { return pub.p }

// RawScalar returns the fixed-width big-endian (or curve-native, for
// ed25519) scalar encoding.
func (priv *PrivateKey) RawScalar() []byte {
	return priv.s.Bytes()
}

// Compressed returns the compressed point encoding: 33 bytes
// (0x02/0x03 prefix) for Weierstrass curves, 32 bytes for ed25519.
func (pub *PublicKey) Compressed() []byte {
	return pub.p.Bytes()
}

type affinePoint interface {
	Affine() (x, y []byte)
}

// Uncompressed returns the 65-byte SEC1 uncompressed encoding for
// Weierstrass curves. ed25519 has no uncompressed form; callers must
// use Compressed instead.
func (pub *PublicKey) Uncompressed() ([]byte, error) {
	ap, ok := pub.p.(affinePoint)
	if !ok {
		return nil, hdkerr.New(hdkerr.InvalidArgument, "keys.PublicKey.Uncompressed",
			pub.curve.Name()+" has no uncompressed point encoding")
	}
	x, y := ap.Affine()
	out := make([]byte, 1+len(x)+len(y))
	out[0] = 0x04
	copy(out[1:], x)
	copy(out[1+len(x):], y)
	return out, nil
}
