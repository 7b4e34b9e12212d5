package hdkit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacadeDeriveSignVerifyRoundTrip(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}

	master, err := MasterFromSeed(CurveSecp256k1, seed, BitcoinMainNet)
	require.NoError(t, err)

	path, err := ParsePath("m/44'/0'/0'/0/0")
	require.NoError(t, err)
	leaf, err := Derive(master, path)
	require.NoError(t, err)

	priv, err := PrivateKeyFromBytes(CurveSecp256k1, leaf.PrivateKeyBytes())
	require.NoError(t, err)
	pub := PublicKeyFromPrivate(priv)
	assert.True(t, bytes.Equal(pub.Compressed(), leaf.PublicKeyBytes()))

	digest := bytes.Repeat([]byte{0x42}, 32)
	sig, err := Sign(priv, digest, false)
	require.NoError(t, err)

	ok, err := Verify(pub, digest, sig, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFacadeSerializeParseExtendedKeyRoundTrip(t *testing.T) {
	seed := bytes.Repeat([]byte{0x11}, 64)
	master, err := MasterFromSeed(CurveSecp256k1, seed, BitcoinMainNet)
	require.NoError(t, err)

	encoded := SerializeExtendedKey(master)
	parsed, err := ParseExtendedKey(encoded, CurveSecp256k1, BitcoinMainNet)
	require.NoError(t, err)
	assert.Equal(t, master.PrivateKeyBytes(), parsed.PrivateKeyBytes())
}

func TestFacadeEncodeDecodeBitcoinAddress(t *testing.T) {
	seed := bytes.Repeat([]byte{0x22}, 64)
	master, err := MasterFromSeed(CurveSecp256k1, seed, BitcoinMainNet)
	require.NoError(t, err)

	addr, err := EncodeAddress("bitcoin", master.PublicKeyBytes(), BitcoinParams{NetVer: []byte{0x00}})
	require.NoError(t, err)
	assert.NotEmpty(t, addr)

	_, err = DecodeAddress("bitcoin", addr, BitcoinParams{NetVer: []byte{0x00}})
	require.NoError(t, err)
}

func TestFacadeMnemonicAndRequestID(t *testing.T) {
	words, err := NewMnemonic(128)
	require.NoError(t, err)
	assert.NotEmpty(t, words)

	id := NewRequestID()
	assert.NotEmpty(t, id)
}
