package base58

import (
	"math/big"

	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// moneroAlphabet is the same 58-character alphabet as standard
// Base58, kept as a local table because Monero's block scheme needs
// direct digit<->character lookups that mr-tron/base58's whole-buffer
// API does not expose.
const moneroAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	moneroFullBlockSize   = 8
	moneroFullEncodedSize = 11
)

// moneroEncodedBlockSizes[n] is the number of base58 characters a
// partial block of n raw bytes (0..8) encodes to. This is Monero's
// fixed lookup table, not a formula: full 8-byte blocks take 11
// characters, but partial blocks do not scale linearly because a
// leading zero byte can still need a placeholder digit.
var moneroEncodedBlockSizes = [9]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

var moneroDigitIndex [256]int8

var moneroBase58 = big.NewInt(58)

func init() {
	for i := range moneroDigitIndex {
		moneroDigitIndex[i] = -1
	}
	for i, c := range moneroAlphabet {
		moneroDigitIndex[byte(c)] = int8(i)
	}
}

func moneroEncodedSizeForDecoded(n int) int {
	return moneroEncodedBlockSizes[n]
}

func moneroDecodedSizeForEncoded(n int) (int, bool) {
	for decoded, encoded := range moneroEncodedBlockSizes {
		if encoded == n {
			return decoded, true
		}
	}
	return 0, false
}

// MoneroEncode encodes data using Monero's block-based Base58 scheme:
// every full 8-byte block becomes 11 characters, with a shorter tail
// block sized per moneroEncodedBlockSizes.
func MoneroEncode(data []byte) string {
	out := make([]byte, 0, (len(data)/moneroFullBlockSize+1)*moneroFullEncodedSize)
	for i := 0; i < len(data); i += moneroFullBlockSize {
		end := i + moneroFullBlockSize
		if end > len(data) {
			end = len(data)
		}
		out = append(out, encodeMoneroBlock(data[i:end])...)
	}
	return string(out)
}

func encodeMoneroBlock(block []byte) []byte {
	encodedSize := moneroEncodedSizeForDecoded(len(block))
	num := new(big.Int).SetBytes(block)

	encoded := make([]byte, encodedSize)
	rem := new(big.Int)
	for i := encodedSize - 1; i >= 0; i-- {
		num.DivMod(num, moneroBase58, rem)
		encoded[i] = moneroAlphabet[rem.Int64()]
	}
	return encoded
}

// MoneroDecode reverses MoneroEncode, rejecting input whose length
// does not divide into valid 11-char (or one shorter tail) blocks, or
// that contains characters outside the alphabet.
func MoneroDecode(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, nil
	}
	fullBlocks := len(s) / moneroFullEncodedSize
	tailLen := len(s) % moneroFullEncodedSize

	decodedTailLen := 0
	if tailLen > 0 {
		n, ok := moneroDecodedSizeForEncoded(tailLen)
		if !ok {
			return nil, hdkerr.New(hdkerr.InvalidLength, "base58.MoneroDecode", "input length is not a valid Monero base58 length")
		}
		decodedTailLen = n
	}

	out := make([]byte, 0, fullBlocks*moneroFullBlockSize+decodedTailLen)
	for i := 0; i < fullBlocks; i++ {
		block := s[i*moneroFullEncodedSize : (i+1)*moneroFullEncodedSize]
		decoded, err := decodeMoneroBlock(block, moneroFullBlockSize)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded...)
	}
	if tailLen > 0 {
		block := s[fullBlocks*moneroFullEncodedSize:]
		decoded, err := decodeMoneroBlock(block, decodedTailLen)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded...)
	}
	return out, nil
}

func decodeMoneroBlock(block string, decodedSize int) ([]byte, error) {
	num := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(block); i++ {
		d := moneroDigitIndex[block[i]]
		if d < 0 {
			return nil, hdkerr.New(hdkerr.InvalidPayload, "base58.MoneroDecode", "character outside base58 alphabet")
		}
		num.Mul(num, moneroBase58)
		num.Add(num, digit.SetInt64(int64(d)))
	}
	raw := num.Bytes()
	if len(raw) > decodedSize {
		return nil, hdkerr.New(hdkerr.InvalidPayload, "base58.MoneroDecode", "block decodes to more bytes than its size allows")
	}
	out := make([]byte, decodedSize)
	copy(out[decodedSize-len(raw):], raw)
	return out, nil
}
