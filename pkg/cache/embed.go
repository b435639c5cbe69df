package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString generates a SHA256 hash of a string.
func HashString(content string) string {
	h := sha256.New()
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

// HashBytes generates a SHA256 hash of bytes.
func HashBytes(data []byte) string {
	h := sha256.New()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hasher abstracts over the content-hashing algorithm a cache key derives
// from, so callers can swap SHA256 for something else without touching the
// cache itself.
type Hasher interface {
	Hash(data []byte) string
}

// SHA256Hasher is the default Hasher, used to key caches by file content.
type SHA256Hasher struct{}

func (h *SHA256Hasher) Hash(data []byte) string {
	return HashBytes(data)
}

// NewSHA256Hasher creates a new SHA256 hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}
