package addresscodec

import (
	"bytes"

	"golang.org/x/crypto/sha3"

	"github.com/smallyu/go-hdkit/internal/codec/base58"
	"github.com/smallyu/go-hdkit/internal/crypto/curves"
	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

const (
	moneroKeyLen        = 32
	moneroPaymentIDLen  = 8
	moneroChecksumLen   = 4
	moneroStandardLen   = 1 + moneroKeyLen*2
	moneroIntegratedLen = moneroStandardLen + moneroPaymentIDLen
)

// MoneroParams configures the Monero standard/integrated address
// pipeline. pub_key_bytes passed to Encode is always the spend public
// key; the view public key rides along in params because Monero
// addresses always embed both keys.
type MoneroParams struct {
	// NetVer is the single network-ID byte (e.g. 0x12 mainnet, 0x35
	// testnet). Mandatory.
	NetVer byte
	// ViewKey is the 32-byte compressed ed25519 view public key.
	// Mandatory.
	ViewKey []byte
	// PaymentID, when non-empty, must be exactly 8 bytes. Encode
	// embeds it to build an integrated address; Decode requires a
	// decoded integrated address's embedded payment ID to match it.
	PaymentID []byte
}

func (MoneroParams) isAddressParams() {}

func keccak256(b []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return h.Sum(nil)
}

func validateEd25519PublicKey(op string, b []byte) error {
	if len(b) != moneroKeyLen {
		return hdkerr.New(hdkerr.InvalidKey, op, "ed25519 public key must be 32 bytes")
	}
	ed25519 := curves.ByType(curves.Ed25519)
	if _, err := ed25519.NewPointFromBytes(b); err != nil {
		return hdkerr.Wrap(hdkerr.InvalidKey, op, err)
	}
	return nil
}

type moneroCodec struct{}

// Encode builds a Monero standard address, or an integrated address
// when params.PaymentID is set:
//
//	payload   = net_ver || spend_pub || view_pub [|| payment_id]
//	checksum  = Keccak256(payload)[:4]
//	addr      = Base58Monero(payload || checksum)
func (moneroCodec) Encode(pubKeyBytes []byte, params Params) (string, error) {
	const op = "addresscodec.monero.Encode"
	mp, ok := params.(MoneroParams)
	if !ok {
		return "", hdkerr.New(hdkerr.InvalidArgument, op, "params must be MoneroParams")
	}
	if err := validateEd25519PublicKey(op, pubKeyBytes); err != nil {
		return "", err
	}
	if err := validateEd25519PublicKey(op, mp.ViewKey); err != nil {
		return "", err
	}
	if len(mp.PaymentID) != 0 && len(mp.PaymentID) != moneroPaymentIDLen {
		return "", hdkerr.New(hdkerr.InvalidArgument, op, "payment_id must be 8 bytes")
	}

	payload := make([]byte, 0, moneroIntegratedLen)
	payload = append(payload, mp.NetVer)
	payload = append(payload, pubKeyBytes...)
	payload = append(payload, mp.ViewKey...)
	payload = append(payload, mp.PaymentID...)

	checksum := keccak256(payload)[:moneroChecksumLen]
	return base58.MoneroEncode(append(payload, checksum...)), nil
}

// Decode reverses Encode. It tells standard and integrated addresses
// apart by decoded length rather than a flag: a standard address
// decodes to moneroStandardLen+checksum bytes, an integrated one to
// moneroIntegratedLen+checksum bytes. It returns spend_pub || view_pub
// (|| payment_id for an integrated address).
func (moneroCodec) Decode(addr string, params Params) ([]byte, error) {
	const op = "addresscodec.monero.Decode"
	mp, ok := params.(MoneroParams)
	if !ok {
		return nil, hdkerr.New(hdkerr.InvalidArgument, op, "params must be MoneroParams")
	}

	raw, err := base58.MoneroDecode(addr)
	if err != nil {
		return nil, err
	}

	var keyLen int
	switch len(raw) {
	case moneroStandardLen + moneroChecksumLen:
		keyLen = moneroStandardLen
	case moneroIntegratedLen + moneroChecksumLen:
		keyLen = moneroIntegratedLen
	default:
		return nil, hdkerr.New(hdkerr.InvalidLength, op, "address decodes to an unexpected length")
	}

	payload := raw[:keyLen]
	checksum := raw[keyLen:]
	want := keccak256(payload)[:moneroChecksumLen]
	if !bytes.Equal(checksum, want) {
		return nil, hdkerr.New(hdkerr.ChecksumError, op, "checksum mismatch")
	}
	if payload[0] != mp.NetVer {
		return nil, hdkerr.New(hdkerr.InvalidPrefix, op, "network byte does not match net_ver")
	}

	spendPub := payload[1 : 1+moneroKeyLen]
	viewPub := payload[1+moneroKeyLen : 1+2*moneroKeyLen]
	if err := validateEd25519PublicKey(op, spendPub); err != nil {
		return nil, err
	}
	if err := validateEd25519PublicKey(op, viewPub); err != nil {
		return nil, err
	}

	if keyLen == moneroIntegratedLen {
		embedded := payload[1+2*moneroKeyLen:]
		if len(mp.PaymentID) != moneroPaymentIDLen || !bytes.Equal(embedded, mp.PaymentID) {
			return nil, hdkerr.New(hdkerr.InvalidPaymentID, op, "embedded payment_id does not match params.PaymentID")
		}
	}

	return payload[1:], nil
}
