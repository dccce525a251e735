package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/realmadmin/pkg/cryptox"
	"github.com/aussiebroadwan/realmadmin/pkg/jwtx"
)

// InitSigningKey loads the Ed25519 signing key and publishes it in a KeySet.
//
// With SigningKeyFile set the key is read from disk, or generated and saved
// on first start, so issued tokens survive restarts. Without it a fresh
// key is generated and every token becomes invalid on restart.
func InitSigningKey(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, *jwtx.KeySet, error) {
	var (
		pemKey []byte
		err    error
	)
	if cfg.SigningKeyFile != "" {
		pemKey, err = cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
	} else {
		pemKey, err = cryptox.GenerateEd25519Key()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	signer, err := jwtx.NewSignerEdDSA(keyID(pemKey), pemKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, err
	}

	logger.Info("signing key loaded",
		"kid", signer.KID(),
		"persistent", cfg.SigningKeyFile != "",
	)
	return signer, keys, nil
}

// keyID derives a stable kid from the key material.
func keyID(pemKey []byte) string {
	sum := sha256.Sum256(pemKey)
	return hex.EncodeToString(sum[:8])
}
