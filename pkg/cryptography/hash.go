package cryptography

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HashHex returns the SHA-256 digest of data as lowercase hex with a 0x prefix.
func HashHex(data []byte) string {
	digest := sha256.Sum256(data)
	return hexutil.Encode(digest[:])
}

// HashString is HashHex over the UTF-8 bytes of s.
func HashString(s string) string {
	return HashHex([]byte(s))
}

// IsHashHex reports whether s looks like a value produced by HashHex.
func IsHashHex(s string) bool {
	decoded, err := hexutil.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == sha256.Size && s == hexutil.Encode(decoded)
}
