package utils

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
)

// HashAlgorithm represents the hashing algorithm to use
type HashAlgorithm string

const (
	SHA256 HashAlgorithm = "sha256"
	SHA512 HashAlgorithm = "sha512"
)

// Hasher computes hex digests of downloads
type Hasher struct {
	algorithm HashAlgorithm
}

// NewHasher creates a new hasher with the specified algorithm. Unknown
// algorithms fall back to SHA256.
func NewHasher(algorithm HashAlgorithm) *Hasher {
	if algorithm != SHA512 {
		algorithm = SHA256
	}
	return &Hasher{algorithm: algorithm}
}

// DefaultHasher returns a hasher with the default algorithm
func DefaultHasher() *Hasher {
	return NewHasher(SHA256)
}

// Algorithm returns the digest name
func (h *Hasher) Algorithm() HashAlgorithm {
	return h.algorithm
}

// Hash computes a hex digest of data
func (h *Hasher) Hash(data []byte) string {
	d := h.digest()
	d.Write(data)
	return hex.EncodeToString(d.Sum(nil))
}

// HashString computes a hex digest of a string
func (h *Hasher) HashString(s string) string {
	return h.Hash([]byte(s))
}

func (h *Hasher) digest() hash.Hash {
	if h.algorithm == SHA512 {
		return sha512.New()
	}
	return sha256.New()
}
