package curves

import (
	"bytes"
	"errors"
	"math/big"

	"filippo.io/edwards25519"
)

var ed25519Curve Curve = &ed25519Impl{}

// ed25519Order is l = 2^252 + 27742317777372353535851937790883648493, the
// order of the ed25519 prime-order subgroup.
var ed25519Order, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

type ed25519Impl struct{}

func (c *ed25519Impl) Type() Type         { return Ed25519 }
func (c *ed25519Impl) Name() string       { return "ed25519" }
func (c *ed25519Impl) ScalarLen() int     { return 32 }
func (c *ed25519Impl) CompressedLen() int { return 32 }

func (c *ed25519Impl) Order() *big.Int {
	return new(big.Int).Set(ed25519Order)
}

func (c *ed25519Impl) BasePoint() Point {
	return &ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (c *ed25519Impl) NewScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, errors.New("ed25519: scalar must be 32 bytes")
	}
	n := new(big.Int).SetBytes(reverseBytes(b))
	if n.Sign() == 0 || n.Cmp(c.Order()) >= 0 {
		return nil, errors.New("ed25519: scalar out of range [1, l-1]")
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, errors.New("ed25519: invalid scalar encoding")
	}
	return &ed25519Scalar{s: s}, nil
}

func (c *ed25519Impl) NewScalarFromBigInt(n *big.Int) Scalar {
	m := new(big.Int).Mod(n, c.Order())
	buf := reverseBytes(padTo(m.Bytes(), 32))
	s, _ := edwards25519.NewScalar().SetCanonicalBytes(buf)
	return &ed25519Scalar{s: s}
}

func (c *ed25519Impl) NewPointFromBytes(b []byte) (Point, error) {
	if len(b) != 32 {
		return nil, errors.New("ed25519: point must be 32 bytes")
	}
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, errors.New("ed25519: invalid point encoding")
	}
	if !bytes.Equal(p.Bytes(), b) {
		return nil, errors.New("ed25519: non-canonical point encoding")
	}
	pt := &ed25519Point{p: p}
	if pt.IsIdentity() {
		return nil, errors.New("ed25519: point is identity")
	}
	if pt.isLowOrder() {
		return nil, errors.New("ed25519: point has low order")
	}
	return pt, nil
}

func (c *ed25519Impl) ScalarBaseMult(s Scalar) Point {
	ss := s.(*ed25519Scalar)
	return &ed25519Point{p: edwards25519.NewIdentityPoint().ScalarBaseMult(ss.s)}
}

// reverseBytes returns a copy of b with its bytes in reverse order,
// converting between big.Int's big-endian convention and
// edwards25519's little-endian scalar/point encoding.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// ed25519Scalar implements Scalar.
type ed25519Scalar struct {
	s *edwards25519.Scalar
}

func (s *ed25519Scalar) Bytes() []byte {
	return s.s.Bytes()
}

func (s *ed25519Scalar) BigInt() *big.Int {
	return new(big.Int).SetBytes(reverseBytes(s.s.Bytes()))
}

func (s *ed25519Scalar) Add(other Scalar) Scalar {
	o := other.(*ed25519Scalar)
	return &ed25519Scalar{s: edwards25519.NewScalar().Add(s.s, o.s)}
}

func (s *ed25519Scalar) Mul(other Scalar) Scalar {
	o := other.(*ed25519Scalar)
	return &ed25519Scalar{s: edwards25519.NewScalar().Multiply(s.s, o.s)}
}

func (s *ed25519Scalar) Invert() Scalar {
	return &ed25519Scalar{s: edwards25519.NewScalar().Invert(s.s)}
}

func (s *ed25519Scalar) IsZero() bool {
	return s.s.Equal(edwards25519.NewScalar()) == 1
}

// ed25519Point implements Point.
type ed25519Point struct {
	p *edwards25519.Point
}

func (p *ed25519Point) Bytes() []byte {
	return p.p.Bytes()
}

func (p *ed25519Point) Add(other Point) Point {
	o := other.(*ed25519Point)
	return &ed25519Point{p: edwards25519.NewIdentityPoint().Add(p.p, o.p)}
}

func (p *ed25519Point) ScalarMult(scalar Scalar) Point {
	s := scalar.(*ed25519Scalar)
	return &ed25519Point{p: edwards25519.NewIdentityPoint().ScalarMult(s.s, p.p)}
}

func (p *ed25519Point) IsIdentity() bool {
	return p.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *ed25519Point) Equal(other Point) bool {
	o, ok := other.(*ed25519Point)
	if !ok {
		return false
	}
	return p.p.Equal(o.p) == 1
}

// isLowOrder reports whether p lies in the cofactor-8 subgroup, i.e.
// has order dividing 8. Multiplying such a point by the cofactor
// collapses it to the identity, unlike a point in the prime-order
// subgroup.
func (p *ed25519Point) isLowOrder() bool {
	cleared := edwards25519.NewIdentityPoint().MultByCofactor(p.p)
	return cleared.Equal(edwards25519.NewIdentityPoint()) == 1
}
