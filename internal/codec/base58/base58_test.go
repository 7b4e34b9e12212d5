package base58

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	encoded := CheckEncode(payload)

	decoded, err := CheckDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestCheckDecodeRejectsTamperedChecksum(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	encoded := CheckEncode(payload)

	tampered := "z" + encoded[1:]
	_, err := CheckDecode(tampered)
	assert.Error(t, err)
}

func TestCheckDecodeRejectsShortPayload(t *testing.T) {
	_, err := CheckDecode(CheckEncode(nil)[:1])
	assert.Error(t, err)
}

func TestMoneroEncodeDecodeRoundTripFullBlocks(t *testing.T) {
	data := make([]byte, moneroFullBlockSize*3)
	for i := range data {
		data[i] = byte(i * 7)
	}

	encoded := MoneroEncode(data)
	assert.Len(t, encoded, 3*moneroFullEncodedSize)

	decoded, err := MoneroDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestMoneroEncodeDecodeRoundTripPartialBlock(t *testing.T) {
	for n := 1; n < moneroFullBlockSize; n++ {
		data := make([]byte, moneroFullBlockSize*2+n)
		for i := range data {
			data[i] = byte(255 - i)
		}

		encoded := MoneroEncode(data)
		wantLen := 2*moneroFullEncodedSize + moneroEncodedSizeForDecoded(n)
		assert.Len(t, encoded, wantLen, "n=%d", n)

		decoded, err := MoneroDecode(encoded)
		require.NoError(t, err)
		assert.Equal(t, data, decoded, "n=%d", n)
	}
}

func TestMoneroEncodePreservesLeadingZeroBytes(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	encoded := MoneroEncode(data)

	decoded, err := MoneroDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestMoneroDecodeRejectsInvalidLength(t *testing.T) {
	_, err := MoneroDecode("1")
	assert.Error(t, err)
}

func TestMoneroDecodeRejectsOutOfAlphabetCharacter(t *testing.T) {
	data := make([]byte, moneroFullBlockSize)
	encoded := MoneroEncode(data)
	tampered := "0" + encoded[1:]

	_, err := MoneroDecode(tampered)
	assert.Error(t, err)
}

func TestMoneroDecodeEmptyString(t *testing.T) {
	decoded, err := MoneroDecode("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
