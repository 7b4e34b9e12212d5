// Package addresscodec implements the address-encoding framework
// (component G): a small Encoder/Decoder capability pair plus a
// registry of chain-specific pipelines built on top of it. Each chain
// family gets its own params type (BitcoinParams, MoneroParams)
// satisfying the Params marker interface rather than a single
// stringly-typed options bag. The compiler rejects any value that is
// not one of these params types; a BitcoinParams value passed to the
// Monero codec (or the reverse) is rejected at run time with an
// InvalidArgument error.
package addresscodec

import "github.com/smallyu/go-hdkit/pkg/hdkerr"

// Params is the marker interface every chain-specific configuration
// bag implements. It carries no methods of its own; its only job is
// to let Encoder/Decoder take a closed set of concrete config types
// instead of interface{}.
type Params interface {
	isAddressParams()
}

// Encoder turns a public key (plus chain params) into an address
// string.
type Encoder interface {
	Encode(pubKeyBytes []byte, params Params) (string, error)
}

// Decoder turns an address string back into its embedded key
// material, validating its checksum and any chain-specific framing
// along the way.
type Decoder interface {
	Decode(addr string, params Params) ([]byte, error)
}

type codec struct {
	Encoder
	Decoder
}

// Registry dispatches encode/decode calls by chain tag. It holds no
// mutable state once its chains are registered, so it is safe for
// concurrent use without a lock.
type Registry struct {
	chains map[string]codec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{chains: make(map[string]codec)}
}

// Register associates a chain tag (e.g. "bitcoin", "monero") with the
// Encoder/Decoder pair that implements its address scheme.
func (r *Registry) Register(tag string, enc Encoder, dec Decoder) {
	r.chains[tag] = codec{Encoder: enc, Decoder: dec}
}

// Encode looks up tag's codec and encodes pubKeyBytes with it.
func (r *Registry) Encode(tag string, pubKeyBytes []byte, params Params) (string, error) {
	c, ok := r.chains[tag]
	if !ok {
		return "", hdkerr.New(hdkerr.InvalidArgument, "addresscodec.Encode", "unknown chain tag: "+tag)
	}
	return c.Encoder.Encode(pubKeyBytes, params)
}

// Decode looks up tag's codec and decodes addr with it.
func (r *Registry) Decode(tag string, addr string, params Params) ([]byte, error) {
	c, ok := r.chains[tag]
	if !ok {
		return nil, hdkerr.New(hdkerr.InvalidArgument, "addresscodec.Decode", "unknown chain tag: "+tag)
	}
	return c.Decoder.Decode(addr, params)
}

// DefaultRegistry returns a new Registry with every chain pipeline
// this package implements already registered under its conventional
// tag ("bitcoin", "monero").
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("bitcoin", bitcoinCodec{}, bitcoinCodec{})
	r.Register("monero", moneroCodec{}, moneroCodec{})
	return r
}
