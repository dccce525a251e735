package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/realmadmin/internal/admin/domain"
	adminhttp "github.com/aussiebroadwan/realmadmin/internal/admin/http"
	"github.com/aussiebroadwan/realmadmin/internal/admin/service"
	"github.com/aussiebroadwan/realmadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/realmadmin/pkg/cryptox"
	"github.com/aussiebroadwan/realmadmin/pkg/jwtx"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "http://admin.test"
	testRealm  = "master"
)

type testEnv struct {
	srv    *httptest.Server
	client *adminsdk.SDKClient
	store  *sqlite.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	hasher := cryptox.Hasher{Pepper: "pepper"}
	boot := &service.BootstrapService{Store: st, Hasher: hasher}
	require.NoError(t, boot.Run(ctx, testRealm, "console", "s3cret"))

	readerHash, err := hasher.Hash("reader-secret")
	require.NoError(t, err)
	require.NoError(t, st.Clients().CreateClient(ctx, domain.Client{
		ID:         "reader",
		Name:       "reader",
		SecretHash: readerHash,
		Scopes:     []string{domain.ScopeRolesRead},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}))

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	router := adminhttp.NewRouter(keys, jwtx.NewVerifierEdDSA(keys, testIssuer, nil), "test", st, slogx.Discard())
	router.TokenService = &service.TokenService{
		Store:     st,
		Signer:    signer,
		Hasher:    hasher,
		Issuer:    testIssuer,
		AccessTTL: time.Minute,
	}
	router.RolesService = &service.RolesService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, client: adminsdk.NewSDKClient(srv.URL), store: st}
}

func (e *testEnv) session(t *testing.T, id, secret string) *adminsdk.Session {
	t.Helper()
	s, err := e.client.AuthenticateWithClientCredentials(context.Background(), id, secret, nil)
	require.NoError(t, err)
	return s
}

func TestRolesEndpoints(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	roles := env.session(t, "console", "s3cret").Roles(testRealm)

	t.Run("bootstrap roles are listed by name", func(t *testing.T) {
		page, err := roles.Find(ctx, adminsdk.FindParams{})
		require.NoError(t, err)
		require.Equal(t, 3, page.Total)
		require.Equal(t, 100, page.Max)
		require.Equal(t, "default-roles-master", page.Roles[0].Name)
		require.True(t, page.Roles[0].Composite)
		require.Equal(t, "offline_access", page.Roles[1].Name)
	})

	t.Run("window and search", func(t *testing.T) {
		page, err := roles.Find(ctx, adminsdk.FindParams{First: adminsdk.Int(1), Max: adminsdk.Int(1)})
		require.NoError(t, err)
		require.Len(t, page.Roles, 1)
		require.Equal(t, "offline_access", page.Roles[0].Name)

		page, err = roles.Find(ctx, adminsdk.FindParams{Search: adminsdk.String("UMA")})
		require.NoError(t, err)
		require.Len(t, page.Roles, 1)
		require.Equal(t, "uma_authorization", page.Roles[0].Name)
	})

	t.Run("negative window rejected", func(t *testing.T) {
		_, err := roles.Find(ctx, adminsdk.FindParams{First: adminsdk.Int(-1)})
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("create get delete", func(t *testing.T) {
		created, err := roles.Create(ctx, adminsdk.CreateRoleRequest{Name: "auditor", Description: "Reads audit logs"})
		require.NoError(t, err)
		require.False(t, created.Composite)

		got, err := roles.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Reads audit logs", got.Description)

		require.NoError(t, roles.DelByID(ctx, created.ID))

		err = roles.DelByID(ctx, created.ID)
		require.True(t, adminsdk.IsNotFound(err))
		require.Equal(t, "not_found: role not found", err.Error())
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := roles.Create(ctx, adminsdk.CreateRoleRequest{Name: "offline_access"})
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("realms are isolated", func(t *testing.T) {
		page, err := env.session(t, "console", "s3cret").Roles("other").Find(ctx, adminsdk.FindParams{})
		require.NoError(t, err)
		require.Zero(t, page.Total)
		require.Empty(t, page.Roles)
	})
}

func TestRolesEndpointsAuthorization(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("missing token", func(t *testing.T) {
		resp, err := http.Get(env.srv.URL + "/v1/realms/master/roles")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("read-only client cannot delete", func(t *testing.T) {
		env.client.CheckScopes = false
		t.Cleanup(func() { env.client.CheckScopes = true })

		reader := env.session(t, "reader", "reader-secret").Roles(testRealm)
		_, err := reader.Find(ctx, adminsdk.FindParams{})
		require.NoError(t, err)

		err = reader.DelByID(ctx, "anything")
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.Equal(t, adminsdk.ErrorCodeInsufficientScope, apiErr.Code)
	})

	t.Run("wrong grant type", func(t *testing.T) {
		resp, err := http.Post(env.srv.URL+"/v1/token", "application/x-www-form-urlencoded",
			strings.NewReader("grant_type=password&client_id=console&client_secret=s3cret"))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSystemEndpoints(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	live, err := env.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := env.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)

	jwks, err := env.client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "k1", jwks.Keys[0].Kid)
}
