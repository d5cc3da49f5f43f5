package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-pass")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPasswordHash("secret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
