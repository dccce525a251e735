package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadConfig()
		require.Equal(t, "realmadmin", cfg.Issuer)
		require.Equal(t, "master", cfg.DefaultRealm)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
		require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ADMIN_ISSUER", "https://admin.example")
		t.Setenv("PORT", "9090")
		t.Setenv("ACCESS_TOKEN_TTL", "5")
		t.Setenv("SHUTDOWN_GRACE_PERIOD", "30s")

		cfg := LoadConfig()
		require.Equal(t, "https://admin.example", cfg.Issuer)
		require.Equal(t, 9090, cfg.Port)
		require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
		require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
	})

	t.Run("malformed values fall back", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		t.Setenv("ACCESS_TOKEN_TTL", "soon")

		cfg := LoadConfig()
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	})
}

func TestNewApplication(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadConfig()
	cfg.DatabaseFile = ":memory:"
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.SigningKeyFile = filepath.Join(dir, "signing.pem")
	cfg.BootstrapClientID = "console"
	cfg.BootstrapClientSecret = "s3cret"
	cfg.LogFormat = "text"
	cfg.LogLevel = "error"

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// A second start reuses the persisted key.
	_, keys, err := InitSigningKey(cfg, app.logger)
	require.NoError(t, err)
	require.Equal(t, app.keys.PublicJWKS(), keys.PublicJWKS())
}
