package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Token format: gs_{secret}
// Example: gs_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
const (
	// TokenPrefix identifies session tokens in logs and debugging.
	TokenPrefix = "gs_"
	// TokenSecretLen is the secret length (hex encoded 16 bytes).
	TokenSecretLen = 32
)

var tokenFormatRegex = regexp.MustCompile(`^gs_[a-f0-9]{32}$`)

// GenerateSessionToken creates a new opaque session token.
// The token carries no decodable meaning; it is only a key into the
// session store.
func GenerateSessionToken() (string, error) {
	secretBytes := make([]byte, TokenSecretLen/2)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return TokenPrefix + hex.EncodeToString(secretBytes), nil
}

// ValidTokenFormat reports whether a client-supplied token matches the
// expected shape. Lets the guard reject garbage without a store lookup.
func ValidTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
