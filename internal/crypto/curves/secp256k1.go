package curves

import (
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var secp256k1Curve Curve = &secp256k1Impl{}

type secp256k1Impl struct{}

func (c *secp256k1Impl) Type() Type { return Secp256k1 }
func (c *secp256k1Impl) Name() string { return "secp256k1" }
func (c *secp256k1Impl) ScalarLen() int { return 32 }
func (c *secp256k1Impl) CompressedLen() int { return 33 }

func (c *secp256k1Impl) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().N)
}

func (c *secp256k1Impl) BasePoint() Point {
	var g secp256k1.JacobianPoint
	one := new(secp256k1.ModNScalar).SetInt(1)
	secp256k1.ScalarBaseMultNonConst(one, &g)
	g.ToAffine()
	return &secp256k1Point{p: g}
}

func (c *secp256k1Impl) NewScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, errors.New("secp256k1: scalar must be 32 bytes")
	}
	n := new(big.Int).SetBytes(b)
	if n.Sign() == 0 || n.Cmp(c.Order()) >= 0 {
		return nil, errors.New("secp256k1: scalar out of range [1, n-1]")
	}
	var s secp256k1.ModNScalar
	s.SetByteSlice(b)
	return &secp256k1Scalar{s: s}, nil
}

func (c *secp256k1Impl) NewScalarFromBigInt(n *big.Int) Scalar {
	m := new(big.Int).Mod(n, c.Order())
	var s secp256k1.ModNScalar
	s.SetByteSlice(padTo(m.Bytes(), 32))
	return &secp256k1Scalar{s: s}
}

func (c *secp256k1Impl) NewPointFromBytes(b []byte) (Point, error) {
	switch len(b) {
	case 33:
		pk, err := secp256k1.ParsePubKey(b)
		if err != nil {
			return nil, errors.New("secp256k1: invalid compressed point")
		}
		var jp secp256k1.JacobianPoint
		pk.AsJacobian(&jp)
		jp.ToAffine()
		if jp.X.IsZero() && jp.Y.IsZero() {
			return nil, errors.New("secp256k1: point is identity")
		}
		return &secp256k1Point{p: jp}, nil
	case 65:
		pk, err := secp256k1.ParsePubKey(b)
		if err != nil {
			return nil, errors.New("secp256k1: invalid uncompressed point")
		}
		var jp secp256k1.JacobianPoint
		pk.AsJacobian(&jp)
		jp.ToAffine()
		return &secp256k1Point{p: jp}, nil
	default:
		return nil, errors.New("secp256k1: point must be 33 or 65 bytes")
	}
}

func (c *secp256k1Impl) ScalarBaseMult(s Scalar) Point {
	ss := s.(*secp256k1Scalar)
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&ss.s, &r)
	r.ToAffine()
	return &secp256k1Point{p: r}
}

type secp256k1Scalar struct {
	s secp256k1.ModNScalar
}

func (s *secp256k1Scalar) Bytes() []byte {
	b := s.s.Bytes()
	return b[:]
}

func (s *secp256k1Scalar) BigInt() *big.Int {
	return new(big.Int).SetBytes(s.Bytes())
}

func (s *secp256k1Scalar) Add(other Scalar) Scalar {
	o := other.(*secp256k1Scalar)
	var r secp256k1.ModNScalar
	r.Set(&s.s)
	r.Add(&o.s)
	return &secp256k1Scalar{s: r}
}

func (s *secp256k1Scalar) Mul(other Scalar) Scalar {
	o := other.(*secp256k1Scalar)
	var r secp256k1.ModNScalar
	r.Set(&s.s)
	r.Mul(&o.s)
	return &secp256k1Scalar{s: r}
}

func (s *secp256k1Scalar) Invert() Scalar {
	var r secp256k1.ModNScalar
	r.Set(&s.s)
	r.InverseNonConst()
	return &secp256k1Scalar{s: r}
}

func (s *secp256k1Scalar) IsZero() bool {
	return s.s.IsZero()
}

type secp256k1Point struct {
	p secp256k1.JacobianPoint
}

func (p *secp256k1Point) Bytes() []byte {
	pub := secp256k1.NewPublicKey(&p.p.X, &p.p.Y)
	return pub.SerializeCompressed()
}

func (p *secp256k1Point) Add(other Point) Point {
	o := other.(*secp256k1Point)
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &o.p, &r)
	r.ToAffine()
	return &secp256k1Point{p: r}
}

func (p *secp256k1Point) ScalarMult(scalar Scalar) Point {
	s := scalar.(*secp256k1Scalar)
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.s, &p.p, &r)
	r.ToAffine()
	return &secp256k1Point{p: r}
}

// Affine returns the point's raw 32-byte big-endian X and Y
// coordinates, for callers (internal/crypto/keys) that need the SEC1
// uncompressed encoding.
func (p *secp256k1Point) Affine() (x, y []byte) {
	return padTo(p.p.X.Bytes()[:], 32), padTo(p.p.Y.Bytes()[:], 32)
}

func (p *secp256k1Point) IsIdentity() bool {
	return (&p.p).X.IsZero() && (&p.p).Y.IsZero()
}

func (p *secp256k1Point) Equal(other Point) bool {
	o, ok := other.(*secp256k1Point)
	if !ok {
		return false
	}
	return p.p.X.Equals(&o.p.X) && p.p.Y.Equals(&o.p.Y)
}

func padTo(b []byte, n int) []byte {
	if len(b) >= n {
		return b[len(b)-n:]
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}
