package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// rfc6979Generator produces deterministic ECDSA nonces per RFC 6979
// section 3.2, using SHA-256 as the underlying hash regardless of
// curve. Successive calls to next() walk the same K/V chain the RFC
// describes for the "candidate was out of range" retry branch, so
// Sign's rare r==0/s==0 retries stay within the deterministic
// construction instead of reseeding from scratch.
type rfc6979Generator struct {
	key   []byte
	v     []byte
	order *big.Int
	qlen  int
}

func newRFC6979Generator(order *big.Int, scalarLen int, privScalar []byte, digest []byte) *rfc6979Generator {
	qlen := order.BitLen()
	h1 := bits2octets(digest, order, qlen, scalarLen)

	v := bytesOf(0x01, sha256.Size)
	k := bytesOf(0x00, sha256.Size)

	k = hmacSum(k, v, []byte{0x00}, privScalar, h1)
	v = hmacSum(k, v)
	k = hmacSum(k, v, []byte{0x01}, privScalar, h1)
	v = hmacSum(k, v)

	return &rfc6979Generator{key: k, v: v, order: order, qlen: qlen}
}

func (g *rfc6979Generator) next() *big.Int {
	for {
		var t []byte
		for len(t)*8 < g.qlen {
			g.v = hmacSum(g.key, g.v)
			t = append(t, g.v...)
		}
		k := bits2int(t, g.qlen)
		g.key = hmacSum(g.key, g.v, []byte{0x00})
		g.v = hmacSum(g.key, g.v)
		if k.Sign() > 0 && k.Cmp(g.order) < 0 {
			return k
		}
	}
}

func hmacSum(key []byte, parts ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil)
}

func bytesOf(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// bits2int takes the leftmost qlen bits of b, interpreted as a
// big-endian integer.
func bits2int(b []byte, qlen int) *big.Int {
	x := new(big.Int).SetBytes(b)
	blen := len(b) * 8
	if blen > qlen {
		x.Rsh(x, uint(blen-qlen))
	}
	return x
}

func int2octets(x *big.Int, rolen int) []byte {
	return padTo(x.Bytes(), rolen)
}

func bits2octets(b []byte, order *big.Int, qlen, rolen int) []byte {
	z := bits2int(b, qlen)
	z.Mod(z, order)
	return int2octets(z, rolen)
}

func padTo(b []byte, n int) []byte {
	if len(b) >= n {
		return b[len(b)-n:]
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}
