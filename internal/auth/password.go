// Package auth establishes and verifies user identity: scrypt password
// digests and cookie-backed server-side sessions.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. The stored form is "hex(digest).hex(salt)".
const (
	scryptN   = 16384
	scryptR   = 8
	scryptP   = 1
	keyLength = 64
	saltBytes = 16
)

// HashPassword derives a salted scrypt digest for storage.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("failed to derive password digest: %w", err)
	}
	return hex.EncodeToString(digest) + "." + hex.EncodeToString(salt), nil
}

// VerifyPassword re-derives the digest with the stored salt and compares in
// constant time. Malformed stored values verify false.
func VerifyPassword(password, stored string) bool {
	digestHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return false
	}
	digest, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(digest, derived) == 1
}
