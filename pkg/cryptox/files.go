package cryptox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadOrCreatePepper reads the pepper at path, creating a new random one on
// first use.
func LoadOrCreatePepper(path string) (string, error) {
	b, err := loadOrCreate(path, func() ([]byte, error) {
		p, err := GenerateToken(keyLength)
		return []byte(p), err
	})
	return string(b), err
}

// LoadOrCreateEd25519Key reads a PEM encoded Ed25519 key at path, generating
// one on first use. Keeping the key on disk lets tokens survive a restart.
func LoadOrCreateEd25519Key(path string) ([]byte, error) {
	return loadOrCreate(path, GenerateEd25519Key)
}

func loadOrCreate(path string, gen func() ([]byte, error)) ([]byte, error) {
	path = filepath.Clean(path)

	b, err := os.ReadFile(path)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("cryptox: create dir: %w", err)
	}
	b, err = gen()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return nil, fmt.Errorf("cryptox: write %s: %w", path, err)
	}
	return b, nil
}
