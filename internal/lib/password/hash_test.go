package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash_AndCompare(t *testing.T) {
	rawPassword := "correct-horse-battery"

	hash, err := GetHash(rawPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	// Хэш не содержит исходный пароль в открытом виде.
	assert.False(t, strings.Contains(hash, rawPassword))

	assert.NoError(t, CompareHash(hash, rawPassword))
}

func TestCompareHash_WrongPassword(t *testing.T) {
	hash, err := GetHash("password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
	}{
		{name: "совсем другой пароль", password: "wrongpassword"},
		{name: "пустой пароль", password: ""},
		{name: "пароль с другим регистром", password: "PASSWORD123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, CompareHash(hash, tt.password))
		})
	}
}

func TestGetHash_SamePasswordDifferentHashes(t *testing.T) {
	first, err := GetHash("password123")
	require.NoError(t, err)
	second, err := GetHash("password123")
	require.NoError(t, err)

	// bcrypt солит каждый хэш
	assert.NotEqual(t, first, second)
}
