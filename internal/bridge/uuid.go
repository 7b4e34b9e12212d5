package bridge

import (
	"regexp"

	"github.com/google/uuid"
)

// uuidV4Pattern matches the canonical 8-4-4-4-12 hex layout with the
// version nibble fixed to 4 and the variant nibble in {8,9,a,b}.
var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// NewRequestID returns a fresh UUIDv4 string, for callers that need an
// opaque unique token (such as a request or correlation ID) rather
// than a cryptographic key.
func NewRequestID() string {
	return uuid.New().String()
}

// IsWellFormedV4 spot-checks that s has the shape of a UUIDv4: the
// version and variant nibbles are fixed, every other nibble is
// hexadecimal. It does not validate checksum or registry uniqueness,
// since UUIDs carry neither.
func IsWellFormedV4(s string) bool {
	return uuidV4Pattern.MatchString(s)
}
