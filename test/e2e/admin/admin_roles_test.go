package admin_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

func TestRolesLifecycle(t *testing.T) {
	client := adminsdk.NewSDKClient(setupAdminContainer(t, false))
	roles := newSession(t, client).Roles(realm)
	ctx := t.Context()

	t.Run("default roles are seeded", func(t *testing.T) {
		page, err := roles.Find(ctx, adminsdk.FindParams{})
		require.NoError(t, err)
		require.Equal(t, []string{"default-roles-master", "offline_access", "uma_authorization"}, roleNames(page))
	})

	t.Run("paging asks for one extra row", func(t *testing.T) {
		for i := range 12 {
			_, err := roles.Create(ctx, adminsdk.CreateRoleRequest{Name: fmt.Sprintf("team-%02d", i)})
			require.NoError(t, err)
		}

		page, err := roles.Find(ctx, adminsdk.FindParams{First: adminsdk.Int(0), Max: adminsdk.Int(11), Search: adminsdk.String("team")})
		require.NoError(t, err)
		require.Len(t, page.Roles, 11)
		require.Equal(t, 12, page.Total)

		page, err = roles.Find(ctx, adminsdk.FindParams{First: adminsdk.Int(10), Max: adminsdk.Int(11), Search: adminsdk.String("team")})
		require.NoError(t, err)
		require.Equal(t, []string{"team-10", "team-11"}, roleNames(page))
	})

	t.Run("search wildcards are literal", func(t *testing.T) {
		page, err := roles.Find(ctx, adminsdk.FindParams{Search: adminsdk.String("%")})
		require.NoError(t, err)
		require.Empty(t, page.Roles)
	})

	t.Run("delete composite child", func(t *testing.T) {
		page, err := roles.Find(ctx, adminsdk.FindParams{Search: adminsdk.String("offline")})
		require.NoError(t, err)
		require.Len(t, page.Roles, 1)

		require.NoError(t, roles.DelByID(ctx, page.Roles[0].ID))

		page, err = roles.Find(ctx, adminsdk.FindParams{Search: adminsdk.String("default-roles")})
		require.NoError(t, err)
		require.Len(t, page.Roles, 1)

		defaults, err := roles.GetByID(ctx, page.Roles[0].ID)
		require.NoError(t, err)
		require.True(t, defaults.Composite)
		require.Len(t, defaults.Composites, 1)
	})

	t.Run("delete twice", func(t *testing.T) {
		created, err := roles.Create(ctx, adminsdk.CreateRoleRequest{Name: "temporary"})
		require.NoError(t, err)

		require.NoError(t, roles.DelByID(ctx, created.ID))
		assertStatus(t, roles.DelByID(ctx, created.ID), http.StatusNotFound)
	})
}

func TestRolesRequireScopes(t *testing.T) {
	client := adminsdk.NewSDKClient(setupAdminContainer(t, false))
	client.CheckScopes = false

	reader := newSession(t, client, adminsdk.ScopeRolesRead).Roles(realm)

	_, err := reader.Find(t.Context(), adminsdk.FindParams{})
	require.NoError(t, err)

	_, err = reader.Create(t.Context(), adminsdk.CreateRoleRequest{Name: "nope"})
	assertStatus(t, err, http.StatusForbidden)

	_, err = client.AuthenticateWithClientCredentials(t.Context(), bootstrapClientID, "wrong", nil)
	assertStatus(t, err, http.StatusUnauthorized)
}
