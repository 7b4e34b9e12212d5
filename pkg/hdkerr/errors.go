// Package hdkerr defines the error taxonomy shared by every package in
// this module. Every failure a caller is expected to branch on surfaces
// as an *Error with a Kind tag, instead of a family of sentinel values
// or panics.
package hdkerr

import "fmt"

// Kind tags the category of failure, independent of which component
// raised it. Callers should switch on Kind, never on the message text.
type Kind int

const (
	_ Kind = iota
	InvalidKey
	InvalidDigest
	InvalidSignature
	SignatureVerificationFailed
	DerivationError
	InvalidExtendedKey
	InvalidPath
	ChecksumError
	InvalidPrefix
	InvalidLength
	InvalidPayload
	InvalidPaymentID
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case InvalidKey:
		return "invalid_key"
	case InvalidDigest:
		return "invalid_digest"
	case InvalidSignature:
		return "invalid_signature"
	case SignatureVerificationFailed:
		return "signature_verification_failed"
	case DerivationError:
		return "derivation_error"
	case InvalidExtendedKey:
		return "invalid_extended_key"
	case InvalidPath:
		return "invalid_path"
	case ChecksumError:
		return "checksum_error"
	case InvalidPrefix:
		return "invalid_prefix"
	case InvalidLength:
		return "invalid_length"
	case InvalidPayload:
		return "invalid_payload"
	case InvalidPaymentID:
		return "invalid_payment_id"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Error is the concrete error type raised across this module. Op names
// the failing operation (e.g. "keys.PrivateFromBytes") so messages stay
// useful without string-matching.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an *Error whose cause is a plain error carrying
// reason.
func New(kind Kind, op, reason string) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf("%s", reason)}
}

// Wrap constructs an *Error around an existing cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is an *Error of the given Kind, unwrapping as
// needed. It lets callers write `hdkerr.Is(err, hdkerr.InvalidKey)`
// instead of type-asserting and comparing Kind by hand.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
