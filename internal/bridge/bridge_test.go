package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMnemonicRoundTripsThroughSeed(t *testing.T) {
	words, err := NewMnemonic(128)
	require.NoError(t, err)
	assert.NotEmpty(t, words)

	seed, err := SeedFromMnemonic(words, "")
	require.NoError(t, err)
	assert.Len(t, seed, 64)
}

func TestSeedFromMnemonicTrezorVectorYields64ByteSeed(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	seed, err := SeedFromMnemonic(mnemonic, "TREZOR")
	require.NoError(t, err)
	assert.Len(t, seed, 64)
}

func TestSeedFromMnemonicRejectsBadChecksum(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"
	_, err := SeedFromMnemonic(mnemonic, "")
	assert.Error(t, err)
}

func TestNewRequestIDIsWellFormedV4(t *testing.T) {
	for i := 0; i < 20; i++ {
		id := NewRequestID()
		assert.True(t, IsWellFormedV4(id), "id %q does not look like a UUIDv4", id)
	}
}

func TestIsWellFormedV4RejectsGarbage(t *testing.T) {
	assert.False(t, IsWellFormedV4("not-a-uuid"))
	assert.False(t, IsWellFormedV4("00000000-0000-0000-0000-000000000000"))
}
