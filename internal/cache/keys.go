package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// SessionTokenKey names the token slot of a browser session
func SessionTokenKey(sessionID string) string {
	return "session:" + sessionID + ":token"
}

// PreviewKey names the cached preview of a destination URL. The URL is hashed
// so arbitrary input cannot produce oversized or colliding keys.
func PreviewKey(target string) string {
	sum := sha256.Sum256([]byte(target))
	return "preview:" + hex.EncodeToString(sum[:])
}
