package cryptox_test

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/realmadmin/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := cryptox.Hasher{Pepper: "pepper"}

	tests := []struct {
		name   string
		secret string
	}{
		{"simple", "s3cret"},
		{"empty", ""},
		{"unicode", "пароль🔒密码"},
		{"long", strings.Repeat("a", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.secret)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
			require.Len(t, strings.Split(hash, "$"), 6)

			require.NoError(t, h.Verify(tt.secret, hash))
			require.ErrorIs(t, h.Verify(tt.secret+"x", hash), cryptox.ErrMismatch)

			// Salts differ per hash
			again, err := h.Hash(tt.secret)
			require.NoError(t, err)
			require.NotEqual(t, hash, again)
		})
	}

	t.Run("pepper matters", func(t *testing.T) {
		hash, err := h.Hash("s3cret")
		require.NoError(t, err)
		require.ErrorIs(t, cryptox.Hasher{Pepper: "other"}.Verify("s3cret", hash), cryptox.ErrMismatch)
	})

	t.Run("malformed hash", func(t *testing.T) {
		for _, bad := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$a$b", "$argon2id$v=19$garbage$a$b"} {
			require.ErrorIs(t, h.Verify("x", bad), cryptox.ErrInvalidHash, bad)
		}
	})
}

func TestGenerateToken(t *testing.T) {
	a, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.Len(t, a, 43)

	b, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	_, err = cryptox.GenerateToken(0)
	require.Error(t, err)
}

func TestGenerateEd25519Key(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	block, _ := pem.Decode(pemBytes)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)
	require.IsType(t, ed25519.PrivateKey{}, key)
}

func TestLoadOrCreateIsStable(t *testing.T) {
	dir := t.TempDir()

	p1, err := cryptox.LoadOrCreatePepper(filepath.Join(dir, "nested", "pepper"))
	require.NoError(t, err)
	require.NotEmpty(t, p1)
	p2, err := cryptox.LoadOrCreatePepper(filepath.Join(dir, "nested", "pepper"))
	require.NoError(t, err)
	require.Equal(t, p1, p2)

	k1, err := cryptox.LoadOrCreateEd25519Key(filepath.Join(dir, "signing.pem"))
	require.NoError(t, err)
	k2, err := cryptox.LoadOrCreateEd25519Key(filepath.Join(dir, "signing.pem"))
	require.NoError(t, err)
	require.Equal(t, k1, k2)
}
