package utils

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := sha256.Sum256([]byte("secret"))

	sealed, err := Encrypt([]byte("access-token-value"), key[:])
	require.NoError(t, err)
	assert.NotContains(t, sealed, "access-token-value")

	plain, err := Decrypt(sealed, key[:])
	require.NoError(t, err)
	assert.Equal(t, "access-token-value", plain)
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	key := sha256.Sum256([]byte("secret"))
	other := sha256.Sum256([]byte("not the secret"))

	sealed, err := Encrypt([]byte("access-token-value"), key[:])
	require.NoError(t, err)

	_, err = Decrypt(sealed, other[:])
	assert.Error(t, err)
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	key := sha256.Sum256([]byte("secret"))

	_, err := Decrypt("AAAA", key[:])
	assert.Error(t, err)
}
