package utils

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateShortCode generates a random string of fixed length.
// Uniqueness is not guaranteed by construction; callers rely on the
// short_code unique constraint to reject collisions.
func GenerateShortCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// GenerateAPIKey generates a UUID string to be used as an API key
func GenerateAPIKey() string {
	return uuid.NewString()
}
