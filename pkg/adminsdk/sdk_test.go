package adminsdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeAdmin struct {
	grants    atomic.Int32
	expiresIn int
	scope     string
	lastQuery string
	lastAuth  string
}

func (f *fakeAdmin) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("client_secret") != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"invalid client"}`))
			return
		}
		n := f.grants.Add(1)
		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: "token-" + string(rune('0'+n)),
			TokenType:   "Bearer",
			ExpiresIn:   f.expiresIn,
			Scope:       f.scope,
		})
	})
	mux.HandleFunc("GET /v1/realms/{realm}/roles", func(w http.ResponseWriter, r *http.Request) {
		f.lastQuery = r.URL.RawQuery
		f.lastAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(RolePage{
			Roles: []Role{{ID: "r1", Name: "offline_access"}},
			Max:   100,
			Total: 1,
		})
	})
	mux.HandleFunc("DELETE /v1/realms/{realm}/roles-by-id/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "r1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not_found","error_description":"role not found"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /v1/realms/{realm}/roles", func(w http.ResponseWriter, r *http.Request) {
		var req CreateRoleRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Role{ID: "r2", Name: req.Name, Description: req.Description})
	})
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`bad gateway`))
	})
	return mux
}

func newFake(t *testing.T, expiresIn int) (*fakeAdmin, *SDKClient) {
	t.Helper()
	f := &fakeAdmin{expiresIn: expiresIn, scope: "roles:read roles:write"}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return f, NewSDKClient(srv.URL + "/")
}

func TestRolesClient(t *testing.T) {
	ctx := context.Background()
	f, client := newFake(t, 300)

	session, err := client.AuthenticateWithClientCredentials(ctx, "console", "s3cret", []string{ScopeRolesRead, ScopeRolesWrite})
	require.NoError(t, err)
	require.True(t, session.HasScope(ScopeRolesWrite))
	roles := session.Roles("master")

	t.Run("find omits absent params", func(t *testing.T) {
		page, err := roles.Find(ctx, FindParams{})
		require.NoError(t, err)
		require.Empty(t, f.lastQuery)
		require.Equal(t, "Bearer token-1", f.lastAuth)
		require.Len(t, page.Roles, 1)
		require.Equal(t, "offline_access", page.Roles[0].Name)
	})

	t.Run("find passes params through", func(t *testing.T) {
		_, err := roles.Find(ctx, FindParams{First: Int(0), Max: Int(11), Search: String("adm in")})
		require.NoError(t, err)
		require.Equal(t, "first=0&max=11&search=adm+in", f.lastQuery)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, roles.DelByID(ctx, "r1"))
	})

	t.Run("delete missing returns api error", func(t *testing.T) {
		err := roles.DelByID(ctx, "nope")
		require.Error(t, err)
		require.True(t, IsNotFound(err))
		require.Equal(t, "not_found: role not found", err.Error())
	})

	t.Run("create", func(t *testing.T) {
		role, err := roles.Create(ctx, CreateRoleRequest{Name: "auditor", Description: "reads"})
		require.NoError(t, err)
		require.Equal(t, "r2", role.ID)
		require.Equal(t, "auditor", role.Name)
	})

	require.Equal(t, int32(1), f.grants.Load())
}

func TestSessionRenewsExpiredToken(t *testing.T) {
	ctx := context.Background()

	// Tokens shorter than the expiry buffer are always considered expired.
	f, client := newFake(t, 10)
	session, err := client.AuthenticateWithClientCredentials(ctx, "console", "s3cret", nil)
	require.NoError(t, err)
	require.Equal(t, "token-1", session.AccessToken())

	_, err = session.Roles("master").Find(ctx, FindParams{})
	require.NoError(t, err)
	require.Equal(t, int32(2), f.grants.Load())
	require.Equal(t, "Bearer token-2", f.lastAuth)
}

func TestClientCredentialsRejected(t *testing.T) {
	_, client := newFake(t, 300)

	_, err := client.AuthenticateWithClientCredentials(context.Background(), "console", "wrong", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInvalidClient, apiErr.Code)
}

func TestScopeCheck(t *testing.T) {
	ctx := context.Background()
	f, client := newFake(t, 300)
	f.scope = ScopeRolesRead

	session, err := client.AuthenticateWithClientCredentials(ctx, "console", "s3cret", nil)
	require.NoError(t, err)

	t.Run("blocked client side", func(t *testing.T) {
		err := session.Roles("master").DelByID(ctx, "r1")
		require.ErrorContains(t, err, "missing required scope(s): roles:write")
	})

	t.Run("disabled", func(t *testing.T) {
		client.CheckScopes = false
		t.Cleanup(func() { client.CheckScopes = true })
		require.NoError(t, session.Roles("master").DelByID(ctx, "r1"))
	})
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	_, client := newFake(t, 300)

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	_, err = client.GetReadiness(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Equal(t, "HTTP 503: Service Unavailable", apiErr.Description)
}
