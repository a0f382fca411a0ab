package redis

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyPrefixMeta is the prefix for cached page metadata keys
const KeyPrefixMeta = "bm:meta:"

// MetaKey returns the Redis key for the metadata of a URL.
// The URL is hashed so arbitrary lengths and characters map to a short key.
func MetaKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return KeyPrefixMeta + hex.EncodeToString(hash[:])[:16]
}
