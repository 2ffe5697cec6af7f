// backend/pkg/utils/session.go
package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random 128-bit identifier with an optional prefix.
func NewID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

// MD5Hash generates MD5 hash of input string
func MD5Hash(input string) string {
	hash := md5.Sum([]byte(input))
	return hex.EncodeToString(hash[:])
}

// PromptKey normalises a prompt into a stable cache key
func PromptKey(prompt string) string {
	return MD5Hash(strings.ToLower(strings.TrimSpace(prompt)))
}

// GenerateRequestID returns a short random id for request tracing
func GenerateRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
