package driver

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is the SHA-256 of a checked input.
type Digest [sha256.Size]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// contentDigest hashes file contents.
func contentDigest(data []byte) Digest {
	return sha256.Sum256(data)
}

// combineDigest: H(content || salt1 || salt2 ...). Порядок солей фиксирован вызывающим.
func combineDigest(content Digest, salts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, s := range salts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(s))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
