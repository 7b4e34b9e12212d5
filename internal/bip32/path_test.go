package bip32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathHardenedAndPlain(t *testing.T) {
	indices, err := ParsePath("m/44'/0'/0'/0/0")
	require.NoError(t, err)
	require.Len(t, indices, 5)
	assert.Equal(t, HardenedOffset+44, indices[0])
	assert.Equal(t, HardenedOffset+0, indices[1])
	assert.Equal(t, HardenedOffset+0, indices[2])
	assert.Equal(t, uint32(0), indices[3])
	assert.Equal(t, uint32(0), indices[4])
}

func TestParsePathAcceptsLowercaseHMarker(t *testing.T) {
	indices, err := ParsePath("m/44h/60h/0h")
	require.NoError(t, err)
	require.Len(t, indices, 3)
	assert.Equal(t, HardenedOffset+44, indices[0])
}

func TestParsePathWithoutLeadingM(t *testing.T) {
	indices, err := ParsePath("44'/0'")
	require.NoError(t, err)
	assert.Len(t, indices, 2)
}

func TestParsePathRejectsEmptySegment(t *testing.T) {
	_, err := ParsePath("m/44'//0")
	assert.Error(t, err)
}

func TestParsePathRejectsNonDigit(t *testing.T) {
	_, err := ParsePath("m/abc'")
	assert.Error(t, err)
}

func TestParsePathRejectsHardenedOverflow(t *testing.T) {
	_, err := ParsePath("m/4294967295")
	assert.Error(t, err)
}
