package secrets_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/secrets"
)

func TestNewCipher(t *testing.T) {
	t.Parallel()

	t.Run("valid passphrase", func(t *testing.T) {
		t.Parallel()
		key, err := secrets.GenerateKey()
		require.NoError(t, err)

		cipher, err := secrets.NewCipher(key)
		require.NoError(t, err)
		require.NotNil(t, cipher)
	})

	t.Run("no passphrase", func(t *testing.T) {
		t.Parallel()
		_, err := secrets.NewCipher()
		assert.ErrorIs(t, err, secrets.ErrNoPassphrase)
	})

	t.Run("passphrase too short", func(t *testing.T) {
		t.Parallel()
		_, err := secrets.NewCipher("too-short")
		assert.ErrorIs(t, err, secrets.ErrPassphraseTooShort)
	})

	t.Run("one short passphrase among valid ones", func(t *testing.T) {
		t.Parallel()
		key, err := secrets.GenerateKey()
		require.NoError(t, err)

		_, err = secrets.NewCipher(key, "short")
		assert.ErrorIs(t, err, secrets.ErrPassphraseTooShort)
	})
}

func TestCipher_EncryptDecrypt(t *testing.T) {
	t.Parallel()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	cipher, err := secrets.NewCipher(key)
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty string", ""},
		{"simple text", "Hello, World!"},
		{"json payload", `{"user_id":42,"_expire":"2026-01-01T00:00:00Z"}`},
		{"unicode", "Hello 世界 🌍"},
		{"long text", strings.Repeat("session payload ", 100)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			token, err := cipher.EncryptString(tt.plaintext)
			require.NoError(t, err)

			if tt.plaintext != "" {
				require.NotEqual(t, tt.plaintext, token)
			}

			decrypted, err := cipher.DecryptString(token)
			require.NoError(t, err)
			require.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestCipher_TokenIsCookieSafe(t *testing.T) {
	t.Parallel()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	cipher, err := secrets.NewCipher(key)
	require.NoError(t, err)

	token, err := cipher.EncryptString(`{"a":1,"b":"two; three","c":null}`)
	require.NoError(t, err)

	// Cookie values must not contain separators, whitespace or padding
	assert.NotContains(t, token, ";")
	assert.NotContains(t, token, ",")
	assert.NotContains(t, token, " ")
	assert.NotContains(t, token, "=")
}

func TestCipher_UniqueTokens(t *testing.T) {
	t.Parallel()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	cipher, err := secrets.NewCipher(key)
	require.NoError(t, err)

	first, err := cipher.EncryptString("same plaintext")
	require.NoError(t, err)
	second, err := cipher.EncryptString("same plaintext")
	require.NoError(t, err)

	// Random nonces make every token unique
	assert.NotEqual(t, first, second)
}

func TestCipher_KeyRotation(t *testing.T) {
	t.Parallel()

	oldKey, err := secrets.GenerateKey()
	require.NoError(t, err)
	newKey, err := secrets.GenerateKey()
	require.NoError(t, err)

	oldCipher, err := secrets.NewCipher(oldKey)
	require.NoError(t, err)

	token, err := oldCipher.EncryptString("sealed before rotation")
	require.NoError(t, err)

	t.Run("rotated cipher opens old tokens", func(t *testing.T) {
		rotated, err := secrets.NewCipher(newKey, oldKey)
		require.NoError(t, err)

		plain, err := rotated.DecryptString(token)
		require.NoError(t, err)
		assert.Equal(t, "sealed before rotation", plain)
	})

	t.Run("rotated cipher seals with new key", func(t *testing.T) {
		rotated, err := secrets.NewCipher(newKey, oldKey)
		require.NoError(t, err)

		fresh, err := rotated.EncryptString("sealed after rotation")
		require.NoError(t, err)

		// Old cipher no longer knows the sealing key
		_, err = oldCipher.DecryptString(fresh)
		assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	})

	t.Run("dropped key loses access", func(t *testing.T) {
		dropped, err := secrets.NewCipher(newKey)
		require.NoError(t, err)

		_, err = dropped.DecryptString(token)
		assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	})
}

func TestCipher_DecryptFailures(t *testing.T) {
	t.Parallel()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	cipher, err := secrets.NewCipher(key)
	require.NoError(t, err)

	t.Run("not base64", func(t *testing.T) {
		t.Parallel()
		_, err := cipher.Decrypt("not!valid!base64!")
		assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		t.Parallel()
		_, err := cipher.Decrypt("YWJj")
		assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		t.Parallel()
		token, err := cipher.EncryptString("authentic data")
		require.NoError(t, err)

		tampered := []byte(token)
		last := len(tampered) - 1
		if tampered[last] == 'A' {
			tampered[last] = 'B'
		} else {
			tampered[last] = 'A'
		}

		_, err = cipher.DecryptString(string(tampered))
		assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	})
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	first, err := secrets.GenerateKey()
	require.NoError(t, err)
	second, err := secrets.GenerateKey()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(first), secrets.MinPassphraseLength)
	assert.NotEqual(t, first, second)
}
