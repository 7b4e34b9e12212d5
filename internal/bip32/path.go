package bip32

import (
	"strconv"
	"strings"

	"github.com/smallyu/go-hdkit/pkg/hdkerr"
)

// ParsePath parses a derivation path of the form "m/44'/0'/0'/0/0" into
// a sequence of indices, with a trailing "'" or "h" marking a segment
// hardened (index | HardenedOffset). The leading "m" (or "M") is
// optional and, if present, is stripped rather than treated as a
// segment.
func ParsePath(path string) ([]uint32, error) {
	segments := strings.Split(path, "/")
	if len(segments) > 0 && (segments[0] == "m" || segments[0] == "M" || segments[0] == "") {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return nil, nil
	}

	indices := make([]uint32, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, hdkerr.New(hdkerr.InvalidPath, "bip32.ParsePath", "empty path segment")
		}

		hardened := false
		numeric := seg
		last := seg[len(seg)-1]
		if last == '\'' || last == 'h' || last == 'H' {
			hardened = true
			numeric = seg[:len(seg)-1]
		}
		if numeric == "" {
			return nil, hdkerr.New(hdkerr.InvalidPath, "bip32.ParsePath", "missing index in segment "+seg)
		}

		n, err := strconv.ParseUint(numeric, 10, 32)
		if err != nil {
			return nil, hdkerr.Wrap(hdkerr.InvalidPath, "bip32.ParsePath", err)
		}
		index := uint32(n)
		if index >= HardenedOffset {
			return nil, hdkerr.New(hdkerr.InvalidPath, "bip32.ParsePath", "index overflows into the hardened range: "+seg)
		}
		if hardened {
			index += HardenedOffset
		}
		indices = append(indices, index)
	}
	return indices, nil
}
