package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the default PBKDF2 iteration count
	DefaultIterations = 600000
	// SaltLength is the salt length in bytes
	SaltLength = 16
	// KeyLength is the derived key length in bytes
	KeyLength = 32
)

var randomRead = rand.Read

const saltCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateSalt() (string, error) {
	buf := make([]byte, SaltLength)
	if _, err := randomRead(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = saltCharset[int(b)%len(saltCharset)]
	}
	return string(buf), nil
}

// HashPassword hashes a password using PBKDF2-SHA256.
// The result is self-describing: pbkdf2:sha256:<iterations>$<salt>$<hash>.
// The salt is a plain ASCII string fed to the KDF verbatim, which keeps
// stored hashes interchangeable with werkzeug's generate_password_hash.
func HashPassword(password string) (string, error) {
	salt, err := generateSalt()
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), DefaultIterations, KeyLength, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s",
		DefaultIterations, salt, hex.EncodeToString(key)), nil
}

// CheckPassword compares a password with a stored hash
func CheckPassword(password, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 {
		return false
	}

	method := strings.Split(parts[0], ":")
	if len(method) != 3 || method[0] != "pbkdf2" || method[1] != "sha256" {
		return false
	}
	iterations, err := strconv.Atoi(method[2])
	if err != nil || iterations < 1 {
		return false
	}

	if parts[1] == "" {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(parts[1]), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// GenerateRandomToken generates a random token of the given byte length
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateCSRFToken generates a 64-character anti-forgery token
func GenerateCSRFToken() (string, error) {
	return GenerateRandomToken(32)
}
