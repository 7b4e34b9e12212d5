package curves

import (
	"crypto/elliptic"
	"errors"
	"math/big"
)

var nistP256Curve Curve = &nistP256Impl{}

type nistP256Impl struct{}

func (c *nistP256Impl) Type() Type    { return NISTP256 }
func (c *nistP256Impl) Name() string  { return "nist256p1" }
func (c *nistP256Impl) ScalarLen() int { return 32 }
func (c *nistP256Impl) CompressedLen() int { return 33 }

func (c *nistP256Impl) curve() elliptic.Curve { return elliptic.P256() }

func (c *nistP256Impl) Order() *big.Int {
	return new(big.Int).Set(c.curve().Params().N)
}

func (c *nistP256Impl) BasePoint() Point {
	params := c.curve().Params()
	return &nistP256Point{curve: c.curve(), x: params.Gx, y: params.Gy}
}

func (c *nistP256Impl) NewScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, errors.New("nist256p1: scalar must be 32 bytes")
	}
	n := new(big.Int).SetBytes(b)
	if n.Sign() == 0 || n.Cmp(c.Order()) >= 0 {
		return nil, errors.New("nist256p1: scalar out of range [1, n-1]")
	}
	return &nistP256Scalar{curve: c.curve(), n: n}, nil
}

func (c *nistP256Impl) NewScalarFromBigInt(n *big.Int) Scalar {
	m := new(big.Int).Mod(n, c.Order())
	return &nistP256Scalar{curve: c.curve(), n: m}
}

func (c *nistP256Impl) NewPointFromBytes(b []byte) (Point, error) {
	switch len(b) {
	case 33:
		x, y := decompressNIST(c.curve(), b)
		if x == nil {
			return nil, errors.New("nist256p1: invalid compressed point")
		}
		if !c.curve().IsOnCurve(x, y) {
			return nil, errors.New("nist256p1: point not on curve")
		}
		if x.Sign() == 0 && y.Sign() == 0 {
			return nil, errors.New("nist256p1: point is identity")
		}
		return &nistP256Point{curve: c.curve(), x: x, y: y}, nil
	case 65:
		x, y := elliptic.Unmarshal(c.curve(), b)
		if x == nil {
			return nil, errors.New("nist256p1: invalid uncompressed point")
		}
		return &nistP256Point{curve: c.curve(), x: x, y: y}, nil
	default:
		return nil, errors.New("nist256p1: point must be 33 or 65 bytes")
	}
}

func (c *nistP256Impl) ScalarBaseMult(s Scalar) Point {
	ss := s.(*nistP256Scalar)
	x, y := c.curve().ScalarBaseMult(padTo(ss.n.Bytes(), 32))
	return &nistP256Point{curve: c.curve(), x: x, y: y}
}

// decompressNIST reconstructs the Y coordinate for a SEC1 compressed
// point on a short Weierstrass curve y^2 = x^3 - 3x + b.
func decompressNIST(curve elliptic.Curve, b []byte) (x, y *big.Int) {
	if len(b) != 33 || (b[0] != 0x02 && b[0] != 0x03) {
		return nil, nil
	}
	params := curve.Params()
	x = new(big.Int).SetBytes(b[1:])
	if x.Cmp(params.P) >= 0 {
		return nil, nil
	}

	ySq := new(big.Int).Exp(x, big.NewInt(3), params.P)
	threeX := new(big.Int).Mul(x, big.NewInt(3))
	ySq.Sub(ySq, threeX)
	ySq.Add(ySq, params.B)
	ySq.Mod(ySq, params.P)

	y = new(big.Int).ModSqrt(ySq, params.P)
	if y == nil {
		return nil, nil
	}
	if y.Bit(0) != uint(b[0]&1) {
		y.Sub(params.P, y)
	}
	return x, y
}

type nistP256Scalar struct {
	curve elliptic.Curve
	n     *big.Int
}

func (s *nistP256Scalar) Bytes() []byte {
	return padTo(s.n.Bytes(), 32)
}

func (s *nistP256Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.n)
}

func (s *nistP256Scalar) Add(other Scalar) Scalar {
	o := other.(*nistP256Scalar)
	r := new(big.Int).Add(s.n, o.n)
	r.Mod(r, s.curve.Params().N)
	return &nistP256Scalar{curve: s.curve, n: r}
}

func (s *nistP256Scalar) Mul(other Scalar) Scalar {
	o := other.(*nistP256Scalar)
	r := new(big.Int).Mul(s.n, o.n)
	r.Mod(r, s.curve.Params().N)
	return &nistP256Scalar{curve: s.curve, n: r}
}

func (s *nistP256Scalar) Invert() Scalar {
	r := new(big.Int).ModInverse(s.n, s.curve.Params().N)
	return &nistP256Scalar{curve: s.curve, n: r}
}

func (s *nistP256Scalar) IsZero() bool {
	return s.n.Sign() == 0
}

type nistP256Point struct {
	curve elliptic.Curve
	x, y  *big.Int
}

func (p *nistP256Point) Bytes() []byte {
	out := make([]byte, 33)
	if p.y.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	copy(out[1:], padTo(p.x.Bytes(), 32))
	return out
}

func (p *nistP256Point) Add(other Point) Point {
	o := other.(*nistP256Point)
	x, y := p.curve.Add(p.x, p.y, o.x, o.y)
	return &nistP256Point{curve: p.curve, x: x, y: y}
}

func (p *nistP256Point) ScalarMult(scalar Scalar) Point {
	s := scalar.(*nistP256Scalar)
	x, y := p.curve.ScalarMult(p.x, p.y, padTo(s.n.Bytes(), 32))
	return &nistP256Point{curve: p.curve, x: x, y: y}
}

// Affine returns the point's raw 32-byte big-endian X and Y
// coordinates, for callers (internal/crypto/keys) that need the SEC1
// uncompressed encoding.
func (p *nistP256Point) Affine() (x, y []byte) {
	return padTo(p.x.Bytes(), 32), padTo(p.y.Bytes(), 32)
}

func (p *nistP256Point) IsIdentity() bool {
	return p.x.Sign() == 0 && p.y.Sign() == 0
}

func (p *nistP256Point) Equal(other Point) bool {
	o, ok := other.(*nistP256Point)
	if !ok {
		return false
	}
	return p.x.Cmp(o.x) == 0 && p.y.Cmp(o.y) == 0
}
