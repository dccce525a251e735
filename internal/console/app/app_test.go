package app

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	adminapp "github.com/aussiebroadwan/realmadmin/internal/admin/app"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadConfig()
		require.Equal(t, "http://localhost:8080", cfg.AdminURL)
		require.Equal(t, "master", cfg.Realm)
		require.Equal(t, 8081, cfg.Port)
		require.Equal(t, 10, cfg.PageSize)
		require.Equal(t, 30*time.Minute, cfg.SessionTTL)
		require.False(t, cfg.SecureCookie)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CONSOLE_ADMIN_URL", "http://admin:8080")
		t.Setenv("CONSOLE_REALM", "acme")
		t.Setenv("CONSOLE_PAGE_SIZE", "25")
		t.Setenv("CONSOLE_SESSION_TTL", "5")
		t.Setenv("ENV", "prod")

		cfg := LoadConfig()
		require.Equal(t, "http://admin:8080", cfg.AdminURL)
		require.Equal(t, "acme", cfg.Realm)
		require.Equal(t, 25, cfg.PageSize)
		require.Equal(t, 5*time.Minute, cfg.SessionTTL)
		require.True(t, cfg.SecureCookie)
	})
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(LoadConfig())
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func newAdminServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	cfg := adminapp.LoadConfig()
	cfg.DatabaseFile = ":memory:"
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.SigningKeyFile = filepath.Join(dir, "signing.pem")
	cfg.BootstrapClientID = "console"
	cfg.BootstrapClientSecret = "s3cret"
	cfg.LogLevel = "error"

	admin, err := adminapp.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(admin.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestConsoleAgainstAdminAPI(t *testing.T) {
	admin := newAdminServer(t)

	cfg := LoadConfig()
	cfg.AdminURL = admin.URL
	cfg.ClientID = "console"
	cfg.ClientSecret = "s3cret"
	cfg.LogLevel = "error"

	t.Run("lists seeded roles", func(t *testing.T) {
		app, err := New(cfg)
		require.NoError(t, err)

		srv := httptest.NewServer(app.Handler())
		t.Cleanup(srv.Close)

		jar, err := cookiejar.New(nil)
		require.NoError(t, err)
		client := &http.Client{Jar: jar}

		resp, err := client.Get(srv.URL + "/roles")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, string(body), "offline_access")
		require.Contains(t, string(body), "default-roles-master")
	})

	t.Run("bad credentials fail fast", func(t *testing.T) {
		bad := cfg
		bad.ClientSecret = "wrong"
		bad.StartupRetries = 3

		start := time.Now()
		_, err := New(bad)
		require.Error(t, err)
		require.Less(t, time.Since(start), time.Second)
	})
}
