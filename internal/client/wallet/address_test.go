package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicevote/voicevote/internal/common"
)

func TestChecksumAddress_KnownVectors(t *testing.T) {
	// reference vectors from EIP-55
	vectors := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}

	for _, want := range vectors {
		got, err := ChecksumAddress(strings.ToLower(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestChecksumAddress_RejectsMalformed(t *testing.T) {
	for _, addr := range []string{"", "0x123", "5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "0xZZeb6053F3E94C9b9A09f33669435E7Ef1BeAed0"} {
		_, err := ChecksumAddress(addr)
		require.ErrorIs(t, err, common.ErrInvalidAddress, addr)
	}
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"), "all-lowercase skips checksum")
	assert.True(t, IsValidAddress("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"), "all-uppercase skips checksum")
	assert.True(t, IsValidAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.False(t, IsValidAddress("0x5Aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed"), "bad checksum")
	assert.False(t, IsValidAddress("0x123"))
}
