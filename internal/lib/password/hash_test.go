package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompareHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "secret1"},
		{name: "long password", password: "a-very-long-password-with-many-characters-123456"},
		{name: "unicode password", password: "пароль-с-юникодом"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			assert.NoError(t, CompareHash(hash, tt.password))
			assert.Error(t, CompareHash(hash, tt.password+"x"))
		})
	}
}

func TestCompareHash_InvalidHash(t *testing.T) {
	assert.Error(t, CompareHash("not-a-bcrypt-hash", "secret1"))
}
