package wallet

import (
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/voicevote/voicevote/internal/common"
)

// ChecksumAddress returns addr in EIP-55 mixed-case form. The input may be
// any-cased but must be a 0x-prefixed 20-byte hex address.
func ChecksumAddress(addr string) (string, error) {
	if !isHexAddress(addr) {
		return "", common.ErrInvalidAddress
	}

	lower := strings.ToLower(addr[2:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := make([]byte, len(lower))
	for i, c := range []byte(lower) {
		if c >= 'a' && c <= 'f' {
			// uppercase when the corresponding hash nibble is >= 8
			nibble := digest[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x0f >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return "0x" + string(out), nil
}

// IsValidAddress reports whether addr is a well-formed hex address. Mixed-case
// inputs must additionally carry a correct EIP-55 checksum.
func IsValidAddress(addr string) bool {
	if !isHexAddress(addr) {
		return false
	}
	hexPart := addr[2:]
	if hexPart == strings.ToLower(hexPart) || hexPart == strings.ToUpper(hexPart) {
		return true
	}
	checksummed, err := ChecksumAddress(addr)
	if err != nil {
		return false
	}
	return checksummed == addr
}

func isHexAddress(addr string) bool {
	if len(addr) != 42 || !strings.HasPrefix(addr, "0x") {
		return false
	}
	for _, c := range addr[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
