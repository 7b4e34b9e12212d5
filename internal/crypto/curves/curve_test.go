package curves

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByType(t *testing.T) {
	assert.Equal(t, secp256k1Curve, ByType(Secp256k1))
	assert.Equal(t, nistP256Curve, ByType(NISTP256))
	assert.Equal(t, ed25519Curve, ByType(Ed25519))
	assert.Nil(t, ByType(Type(99)))
}

func TestScalarArithmetic(t *testing.T) {
	for _, curve := range []Curve{secp256k1Curve, nistP256Curve, ed25519Curve} {
		t.Run(curve.Name(), func(t *testing.T) {
			val := big.NewInt(12345)
			s := curve.NewScalarFromBigInt(val)
			assert.Equal(t, val, s.BigInt())

			sum := s.Add(s)
			assert.Equal(t, big.NewInt(24690), sum.BigInt())

			prod := s.Mul(s)
			assert.Equal(t, new(big.Int).Mul(val, val), prod.BigInt())

			inv := s.Invert()
			one := inv.Mul(s)
			assert.Equal(t, big.NewInt(1), one.BigInt())
		})
	}
}

func TestPointArithmeticAndCompression(t *testing.T) {
	for _, curve := range []Curve{secp256k1Curve, nistP256Curve, ed25519Curve} {
		t.Run(curve.Name(), func(t *testing.T) {
			g := curve.BasePoint()
			require.False(t, g.IsIdentity())

			two := curve.NewScalarFromBigInt(big.NewInt(2))
			doubled := g.ScalarMult(two)
			added := g.Add(g)
			assert.True(t, doubled.Equal(added))

			encoded := doubled.Bytes()
			assert.Len(t, encoded, curve.CompressedLen())

			roundTripped, err := curve.NewPointFromBytes(encoded)
			require.NoError(t, err)
			assert.True(t, doubled.Equal(roundTripped))
		})
	}
}

func TestScalarFromBytesRejectsOutOfRange(t *testing.T) {
	for _, curve := range []Curve{secp256k1Curve, nistP256Curve, ed25519Curve} {
		t.Run(curve.Name(), func(t *testing.T) {
			zero := make([]byte, curve.ScalarLen())
			_, err := curve.NewScalarFromBytes(zero)
			assert.Error(t, err)

			_, err = curve.NewScalarFromBytes(make([]byte, curve.ScalarLen()+1))
			assert.Error(t, err)
		})
	}
}

func TestNewPointFromBytesRejectsIdentity(t *testing.T) {
	// secp256k1 and nist256p1 represent the identity as (0, 0) and never
	// serialize it as a valid compressed point; invalid compressed
	// encodings are rejected before the identity check runs.
	_, err := secp256k1Curve.NewPointFromBytes(make([]byte, 33))
	assert.Error(t, err)

	_, err = nistP256Curve.NewPointFromBytes(make([]byte, 33))
	assert.Error(t, err)
}

func TestEd25519LowOrderPointRejected(t *testing.T) {
	// The point (x=0, y=p-1) has order 2; it is a well-known small-order
	// torsion point and must be rejected by NewPointFromBytes.
	const orderTwoHex = "ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"
	encoded, err := hex.DecodeString(orderTwoHex)
	require.NoError(t, err)
	_, err = ed25519Curve.NewPointFromBytes(encoded)
	assert.Error(t, err)
}
