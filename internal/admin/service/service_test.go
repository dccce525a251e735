package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/realmadmin/internal/admin/domain"
	"github.com/aussiebroadwan/realmadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/realmadmin/pkg/cryptox"
	"github.com/aussiebroadwan/realmadmin/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testRealm = "master"

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func intp(v int) *int { return &v }

func TestRolesServiceFind(t *testing.T) {
	ctx := context.Background()
	svc := &RolesService{Store: newTestStore(t)}

	for _, n := range []string{"a", "b", "c", "d"} {
		_, err := svc.Create(ctx, testRealm, CreateRoleInput{Name: n})
		require.NoError(t, err)
	}

	t.Run("defaults", func(t *testing.T) {
		page, err := svc.Find(ctx, testRealm, FindParams{})
		require.NoError(t, err)
		require.Equal(t, 0, page.First)
		require.Equal(t, DefaultMax, page.Max)
		require.Equal(t, 4, page.Total)
		require.Len(t, page.Roles, 4)
	})

	t.Run("window keeps total", func(t *testing.T) {
		page, err := svc.Find(ctx, testRealm, FindParams{First: intp(1), Max: intp(2)})
		require.NoError(t, err)
		require.Len(t, page.Roles, 2)
		require.Equal(t, "b", page.Roles[0].Name)
		require.Equal(t, 4, page.Total)
	})

	t.Run("max is capped", func(t *testing.T) {
		page, err := svc.Find(ctx, testRealm, FindParams{Max: intp(MaxMax * 10)})
		require.NoError(t, err)
		require.Equal(t, MaxMax, page.Max)
	})

	t.Run("negative window rejected", func(t *testing.T) {
		_, err := svc.Find(ctx, testRealm, FindParams{First: intp(-1)})
		require.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("search", func(t *testing.T) {
		page, err := svc.Find(ctx, testRealm, FindParams{Search: " c "})
		require.NoError(t, err)
		require.Equal(t, 1, page.Total)
		require.Equal(t, "c", page.Roles[0].Name)
	})
}

func TestRolesServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := &RolesService{Store: newTestStore(t)}

	base, err := svc.Create(ctx, testRealm, CreateRoleInput{Name: "  viewer ", Description: "read only"})
	require.NoError(t, err)
	require.Equal(t, "viewer", base.Name)
	require.False(t, base.Composite)

	t.Run("composite", func(t *testing.T) {
		r, err := svc.Create(ctx, testRealm, CreateRoleInput{Name: "bundle", Composites: []string{base.ID, base.ID}})
		require.NoError(t, err)
		require.True(t, r.Composite)
		require.Equal(t, []string{base.ID}, r.Composites)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Create(ctx, testRealm, CreateRoleInput{Name: "viewer"})
		require.ErrorIs(t, err, ErrRoleExists)
	})

	t.Run("invalid names", func(t *testing.T) {
		for _, n := range []string{"", "   ", string(make([]rune, 256))} {
			_, err := svc.Create(ctx, testRealm, CreateRoleInput{Name: n})
			require.ErrorIs(t, err, ErrInvalidRoleName)
		}
	})

	t.Run("unknown composite", func(t *testing.T) {
		_, err := svc.Create(ctx, testRealm, CreateRoleInput{Name: "broken", Composites: []string{"nope"}})
		require.ErrorIs(t, err, ErrUnknownComposite)
	})
}

func TestRolesServiceGetAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := &RolesService{Store: newTestStore(t)}

	r, err := svc.Create(ctx, testRealm, CreateRoleInput{Name: "temp"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, testRealm, r.ID)
	require.NoError(t, err)
	require.Equal(t, "temp", got.Name)

	require.NoError(t, svc.Delete(ctx, testRealm, r.ID))
	require.ErrorIs(t, svc.Delete(ctx, testRealm, r.ID), ErrRoleNotFound)

	_, err = svc.Get(ctx, testRealm, r.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestBootstrapAndClientCredentials(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	hasher := cryptox.Hasher{Pepper: "test-pepper"}

	boot := &BootstrapService{Store: st, Hasher: hasher}
	require.NoError(t, boot.Run(ctx, testRealm, "console", "s3cret"))
	require.NoError(t, boot.Run(ctx, testRealm, "console", "s3cret"))

	page, err := (&RolesService{Store: st}).Find(ctx, testRealm, FindParams{})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)

	defaults, err := st.Roles().GetRoleByName(ctx, testRealm, "default-roles-master")
	require.NoError(t, err)
	require.True(t, defaults.Composite)
	require.Len(t, defaults.Composites, 2)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	tokens := &TokenService{
		Store:     st,
		Signer:    signer,
		Hasher:    hasher,
		Issuer:    "realmadmin",
		AccessTTL: time.Minute,
	}

	t.Run("all allowed scopes by default", func(t *testing.T) {
		tok, err := tokens.ClientCredentials(ctx, "console", "s3cret", nil)
		require.NoError(t, err)
		require.Equal(t, domain.AllScopes, tok.Scopes)

		claims, err := jwtx.NewVerifierEdDSA(keys, "realmadmin", nil).Verify(tok.Token)
		require.NoError(t, err)
		require.Equal(t, "console", claims.Subject)
	})

	t.Run("narrowed scopes", func(t *testing.T) {
		tok, err := tokens.ClientCredentials(ctx, "console", "s3cret", []string{domain.ScopeRolesRead})
		require.NoError(t, err)
		require.Equal(t, []string{domain.ScopeRolesRead}, tok.Scopes)
	})

	t.Run("unknown scope", func(t *testing.T) {
		_, err := tokens.ClientCredentials(ctx, "console", "s3cret", []string{"users:write"})
		require.ErrorIs(t, err, ErrInvalidScope)
	})

	t.Run("bad secret", func(t *testing.T) {
		_, err := tokens.ClientCredentials(ctx, "console", "wrong", nil)
		require.ErrorIs(t, err, ErrInvalidClient)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := tokens.ClientCredentials(ctx, "ghost", "s3cret", nil)
		require.ErrorIs(t, err, ErrInvalidClient)
	})
}
