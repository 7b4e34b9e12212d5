package addresscodec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-hdkit/internal/crypto/curves"
)

func testEd25519PubKey(t *testing.T, seedByte byte) []byte {
	t.Helper()
	curve := curves.ByType(curves.Ed25519)
	scalarBytes := bytes.Repeat([]byte{seedByte}, curve.ScalarLen())
	scalar, err := curve.NewScalarFromBytes(scalarBytes)
	require.NoError(t, err)
	return curve.ScalarBaseMult(scalar).Bytes()
}

func testSecp256k1PubKey(t *testing.T, seedByte byte) []byte {
	t.Helper()
	curve := curves.ByType(curves.Secp256k1)
	scalarBytes := bytes.Repeat([]byte{seedByte}, curve.ScalarLen())
	scalar, err := curve.NewScalarFromBytes(scalarBytes)
	require.NoError(t, err)
	return curve.ScalarBaseMult(scalar).Bytes()
}

func TestBitcoinEncodeDecodeRoundTrip(t *testing.T) {
	params := BitcoinParams{NetVer: []byte{0x00}}
	pub := testSecp256k1PubKey(t, 0x07)

	addr, err := bitcoinCodec{}.Encode(pub, params)
	require.NoError(t, err)
	assert.NotEmpty(t, addr)

	payload, err := bitcoinCodec{}.Decode(addr, params)
	require.NoError(t, err)
	assert.Equal(t, hash160(pub), payload)
}

func TestBitcoinDecodeRejectsWrongNetVer(t *testing.T) {
	pub := testSecp256k1PubKey(t, 0x07)
	addr, err := bitcoinCodec{}.Encode(pub, BitcoinParams{NetVer: []byte{0x00}})
	require.NoError(t, err)

	_, err = bitcoinCodec{}.Decode(addr, BitcoinParams{NetVer: []byte{0x05}})
	assert.Error(t, err)
}

func TestBitcoinEncodeRejectsMissingNetVer(t *testing.T) {
	pub := testSecp256k1PubKey(t, 0x07)
	_, err := bitcoinCodec{}.Encode(pub, BitcoinParams{})
	assert.Error(t, err)
}

func TestMoneroStandardAddressRoundTrip(t *testing.T) {
	spend := testEd25519PubKey(t, 0x01)
	view := testEd25519PubKey(t, 0x02)
	params := MoneroParams{NetVer: 0x12, ViewKey: view}

	addr, err := moneroCodec{}.Encode(spend, params)
	require.NoError(t, err)

	payload, err := moneroCodec{}.Decode(addr, params)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, append(append([]byte{}, spend...), view...)))
}

func TestMoneroIntegratedAddressPaymentIDMatch(t *testing.T) {
	spend := testEd25519PubKey(t, 0x01)
	view := testEd25519PubKey(t, 0x02)
	paymentID := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	params := MoneroParams{NetVer: 0x13, ViewKey: view, PaymentID: paymentID}

	addr, err := moneroCodec{}.Encode(spend, params)
	require.NoError(t, err)

	payload, err := moneroCodec{}.Decode(addr, params)
	require.NoError(t, err)
	assert.Equal(t, paymentID, payload[len(payload)-8:])
}

func TestMoneroIntegratedAddressRejectsMismatchedPaymentID(t *testing.T) {
	spend := testEd25519PubKey(t, 0x01)
	view := testEd25519PubKey(t, 0x02)
	encodeParams := MoneroParams{NetVer: 0x13, ViewKey: view, PaymentID: []byte{1, 2, 3, 4, 5, 6, 7, 8}}

	addr, err := moneroCodec{}.Encode(spend, encodeParams)
	require.NoError(t, err)

	decodeParams := MoneroParams{NetVer: 0x13, ViewKey: view, PaymentID: []byte{8, 7, 6, 5, 4, 3, 2, 1}}
	_, err = moneroCodec{}.Decode(addr, decodeParams)
	assert.Error(t, err)
}

func TestMoneroDecodeRejectsTamperedChecksum(t *testing.T) {
	spend := testEd25519PubKey(t, 0x01)
	view := testEd25519PubKey(t, 0x02)
	params := MoneroParams{NetVer: 0x12, ViewKey: view}

	addr, err := moneroCodec{}.Encode(spend, params)
	require.NoError(t, err)

	tampered := []byte(addr)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	_, err = moneroCodec{}.Decode(string(tampered), params)
	assert.Error(t, err)
}

func TestMoneroEncodeRejectsNonCanonicalViewKey(t *testing.T) {
	spend := testEd25519PubKey(t, 0x01)
	_, err := moneroCodec{}.Encode(spend, MoneroParams{NetVer: 0x12, ViewKey: bytes.Repeat([]byte{0xff}, 32)})
	assert.Error(t, err)
}

func TestDefaultRegistryDispatchesByTag(t *testing.T) {
	reg := DefaultRegistry()
	pub := testSecp256k1PubKey(t, 0x07)

	addr, err := reg.Encode("bitcoin", pub, BitcoinParams{NetVer: []byte{0x00}})
	require.NoError(t, err)
	_, err = reg.Decode("bitcoin", addr, BitcoinParams{NetVer: []byte{0x00}})
	require.NoError(t, err)

	_, err = reg.Encode("unknown-chain", pub, BitcoinParams{NetVer: []byte{0x00}})
	assert.Error(t, err)
}
