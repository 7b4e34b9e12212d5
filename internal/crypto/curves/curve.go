// Package curves provides the elliptic-curve primitives (component A)
// shared by the key, signer, and BIP-32 packages. Each supported curve
// is a singleton value satisfying Curve; points and scalars are opaque
// so that Weierstrass (secp256k1, NIST P-256) and Edwards (ed25519)
// curves can be driven through the same capability surface.
package curves

import "math/big"

// Type identifies one of the closed set of curves this module supports.
// It is the tag half of the tagged-variant design used in place of
// class inheritance (see DESIGN.md, Open Questions).
type Type int

const (
	Secp256k1 Type = iota
	NISTP256
	Ed25519
)

func (t Type) String() string {
	switch t {
	case Secp256k1:
		return "secp256k1"
	case NISTP256:
		return "nist256p1"
	case Ed25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// Scalar is an integer modulo a curve's group order.
type Scalar interface {
	Bytes() []byte
	BigInt() *big.Int
	Add(Scalar) Scalar
	Mul(Scalar) Scalar
	Invert() Scalar
	IsZero() bool
}

// Point is a point on an elliptic curve, opaque to its coordinate
// system (affine/Jacobian for Weierstrass curves, extended coordinates
// for Edwards curves).
type Point interface {
	// Bytes returns the compressed serialization of the point.
	Bytes() []byte
	Add(Point) Point
	ScalarMult(Scalar) Point
	IsIdentity() bool
	Equal(Point) bool
}

// Curve is the per-curve capability record (component A). There is one
// immutable singleton per Type, shared by reference and never mutated.
type Curve interface {
	Type() Type
	Name() string

	// ScalarLen is the byte length of a serialized private scalar.
	ScalarLen() int
	// CompressedLen is the byte length of a compressed public point.
	CompressedLen() int

	Order() *big.Int
	BasePoint() Point

	// NewScalarFromBytes validates the scalar is in [1, order-1] and
	// rejects anything else (or a wrong length) with an error, which
	// internal/crypto/keys wraps as hdkerr.InvalidKey.
	NewScalarFromBytes(b []byte) (Scalar, error)
	NewScalarFromBigInt(n *big.Int) Scalar

	// NewPointFromBytes accepts compressed (and, for Weierstrass
	// curves, uncompressed) encodings. It rejects off-curve points,
	// the identity, and (for Edwards curves) low-order points.
	NewPointFromBytes(b []byte) (Point, error)
	ScalarBaseMult(s Scalar) Point
}

// ByType returns the singleton Curve for t, or nil if unsupported.
func ByType(t Type) Curve {
	switch t {
	case Secp256k1:
		return secp256k1Curve
	case NISTP256:
		return nistP256Curve
	case Ed25519:
		return ed25519Curve
	default:
		return nil
	}
}
