// Package base58 implements the Base58 encodings this module's
// address and extended-key codecs build on: the standard
// Bitcoin-family alphabet (via github.com/mr-tron/base58) wrapped with
// a double-SHA-256 Base58Check discipline, and the distinct
// block-based Base58-Monero scheme Monero addresses use.
package base58

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

const checksumLen = 4

func doubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// CheckEncode Base58-encodes payload with a trailing 4-byte
// double-SHA-256 checksum, the scheme Bitcoin-family addresses and
// BIP-32 extended keys share.
func CheckEncode(payload []byte) string {
	checksum := doubleSHA256(payload)
	buf := make([]byte, len(payload)+checksumLen)
	copy(buf, payload)
	copy(buf[len(payload):], checksum[:checksumLen])
	return base58.Encode(buf)
}

// CheckDecode reverses CheckEncode, validating the checksum.
func CheckDecode(s string) ([]byte, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return nil, hdkerr.Wrap(hdkerr.InvalidPayload, "base58.CheckDecode", err)
	}
	if len(decoded) < checksumLen {
		return nil, hdkerr.New(hdkerr.InvalidLength, "base58.CheckDecode", "payload shorter than checksum")
	}
	payload := decoded[:len(decoded)-checksumLen]
	checksum := decoded[len(decoded)-checksumLen:]
	want := doubleSHA256(payload)[:checksumLen]
	for i := range checksum {
		if checksum[i] != want[i] {
			return nil, hdkerr.New(hdkerr.ChecksumError, "base58.CheckDecode", "checksum mismatch")
		}
	}
	return payload, nil
}
