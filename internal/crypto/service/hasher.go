package service

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/tjfoc/gmsm/sm3"
)

// SM3Hasher implements Hasher with the SM3 digest (GB/T 32905). Output is 64 hex
// characters.
type SM3Hasher struct{}

// NewSM3Hasher creates a new SM3 hasher.
func NewSM3Hasher() *SM3Hasher {
	return &SM3Hasher{}
}

// Hash returns the SM3 digest of text.
func (h *SM3Hasher) Hash(text string) string {
	return hex.EncodeToString(sm3.Sm3Sum([]byte(text)))
}

// HashWithSalt returns the SM3 digest of salt+text.
func (h *SM3Hasher) HashWithSalt(text, salt string) string {
	return h.Hash(salt + text)
}

// SHA256Hasher implements Hasher with SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA-256 hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Hash returns the SHA-256 digest of text.
func (h *SHA256Hasher) Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// HashWithSalt returns the SHA-256 digest of salt+text.
func (h *SHA256Hasher) HashWithSalt(text, salt string) string {
	return h.Hash(salt + text)
}
