package utils

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashToken digests a refresh token for at-rest storage. The digest is
// deterministic so the storage layer can compare-and-swap on it during
// rotation; the token itself carries enough entropy that no salt is
// needed.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
