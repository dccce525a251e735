package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/realmadmin/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "https://admin.example.test"

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "admin"}}

	require.NoError(t, c.ValidateIssuer("admin"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("console"), jwtx.ErrIssuer)
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"admin-api", "console"}}}

	t.Run("any match", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience([]string{"foo", "console"}))
	})

	t.Run("no match", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateAudience([]string{"billing"}), jwtx.ErrAudience)
	})

	t.Run("nothing expected", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience(nil))
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		name   string
		exp    time.Time
		nbf    time.Time
		leeway time.Duration
		want   error
	}{
		{name: "valid", exp: now.Add(time.Minute)},
		{name: "expired", exp: now.Add(-time.Minute), want: jwtx.ErrExpired},
		{name: "expired within leeway", exp: now.Add(-10 * time.Second), leeway: 30 * time.Second},
		{name: "expired beyond leeway", exp: now.Add(-2 * time.Minute), leeway: 30 * time.Second, want: jwtx.ErrExpired},
		{name: "not yet valid", nbf: now.Add(time.Minute), want: jwtx.ErrNotYetValid},
		{name: "no exp or nbf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &jwtx.Claims{}
			if !tc.exp.IsZero() {
				c.ExpiresAt = jwt.NewNumericDate(tc.exp)
			}
			if !tc.nbf.IsZero() {
				c.NotBefore = jwt.NewNumericDate(tc.nbf)
			}

			err := c.ValidateExpiry(tc.leeway)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestHasScope(t *testing.T) {
	c := jwtx.NewAccessClaims("client-1", "Console", []string{"roles:read"}, time.Minute, exampleIssuer, nil, time.Now())
	require.True(t, c.HasScope("roles:read"))
	require.False(t, c.HasScope("roles:write"))
	require.NotEmpty(t, c.ID)
}
