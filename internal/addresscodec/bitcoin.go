package addresscodec

import (
	"bytes"
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // hash160 is RIPEMD160(SHA-256(.)), the standard Bitcoin-family pubkey hash

	"github.com/smallyu/go-hdkit/internal/codec/base58"
	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// BitcoinParams configures the Base58Check pipeline shared by the
// Bitcoin-family address schemes this codec covers: a single version
// byte sequence prefixed onto a pubkey hash.
type BitcoinParams struct {
	// NetVer is the address-version prefix (e.g. 0x00 for Bitcoin
	// mainnet P2PKH, 0x05 for P2SH). Mandatory.
	NetVer []byte
}

func (BitcoinParams) isAddressParams() {}

func hash160(pubKeyBytes []byte) []byte {
	sum := sha256.Sum256(pubKeyBytes)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

type bitcoinCodec struct{}

// Encode builds a Bitcoin-family address: Base58Check(net_ver ||
// hash160(pub_key_bytes)).
func (bitcoinCodec) Encode(pubKeyBytes []byte, params Params) (string, error) {
	bp, ok := params.(BitcoinParams)
	if !ok {
		return "", hdkerr.New(hdkerr.InvalidArgument, "addresscodec.bitcoin.Encode", "params must be BitcoinParams")
	}
	if len(bp.NetVer) == 0 {
		return "", hdkerr.New(hdkerr.InvalidArgument, "addresscodec.bitcoin.Encode", "net_ver is required")
	}
	if len(pubKeyBytes) == 0 {
		return "", hdkerr.New(hdkerr.InvalidKey, "addresscodec.bitcoin.Encode", "pub_key_bytes is empty")
	}

	payload := make([]byte, 0, len(bp.NetVer)+ripemd160.Size)
	payload = append(payload, bp.NetVer...)
	payload = append(payload, hash160(pubKeyBytes)...)
	return base58.CheckEncode(payload), nil
}

// Decode reverses Encode, returning the pubkey hash with its version
// prefix stripped off after verifying it matches params.NetVer.
func (bitcoinCodec) Decode(addr string, params Params) ([]byte, error) {
	bp, ok := params.(BitcoinParams)
	if !ok {
		return nil, hdkerr.New(hdkerr.InvalidArgument, "addresscodec.bitcoin.Decode", "params must be BitcoinParams")
	}
	if len(bp.NetVer) == 0 {
		return nil, hdkerr.New(hdkerr.InvalidArgument, "addresscodec.bitcoin.Decode", "net_ver is required")
	}

	payload, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, err
	}
	if len(payload) <= len(bp.NetVer) {
		return nil, hdkerr.New(hdkerr.InvalidLength, "addresscodec.bitcoin.Decode", "payload too short for its version prefix")
	}
	if !bytes.Equal(payload[:len(bp.NetVer)], bp.NetVer) {
		return nil, hdkerr.New(hdkerr.InvalidPrefix, "addresscodec.bitcoin.Decode", "version prefix does not match net_ver")
	}
	return payload[len(bp.NetVer):], nil
}
