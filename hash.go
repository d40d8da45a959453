package i18nsync

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText computes the SHA-256 hash of text. Whitespace is significant:
// attribute values are bound untrimmed and must not share a cache entry with
// their trimmed form.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a translation cache key from a text hash and language pair.
func CacheKey(hash, sourceLang, targetLang string) string {
	return hash + ":" + sourceLang + ":" + targetLang
}

// CacheKeyExtended generates a cache key that also separates translations by
// provider or model, so switching engines does not reuse stale entries.
func CacheKeyExtended(hash, sourceLang, targetLang, model string) string {
	return hash + ":" + sourceLang + ":" + targetLang + ":" + model
}
