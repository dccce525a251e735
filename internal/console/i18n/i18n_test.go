package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBundleTranslate(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	en := b.Translator("en")

	t.Run("namespaced key", func(t *testing.T) {
		require.Equal(t, "Realm roles", en.T("roles:title"))
		require.Equal(t, "Delete", en.T("common:delete"))
	})

	t.Run("default namespace", func(t *testing.T) {
		require.Equal(t, en.T("roles:createRole"), en.T("createRole"))
	})

	t.Run("missing key returns key", func(t *testing.T) {
		require.Equal(t, "roles:nope", en.T("roles:nope"))
		require.Equal(t, "nope:title", en.T("nope:title"))
	})

	t.Run("parameters", func(t *testing.T) {
		msg := en.T("roles:roleDeleteConfirmDialog", P("selectedRoleName", "auditor"))
		require.Contains(t, msg, "auditor")
		require.NotContains(t, msg, "{{")
	})

	t.Run("missing parameter left verbatim", func(t *testing.T) {
		require.Contains(t, en.T("roles:roleDeleteConfirmDialog"), "{{selectedRoleName}}")
	})

	t.Run("german with english fallback", func(t *testing.T) {
		de := b.Translator("de")
		require.Equal(t, "de", de.Lang())
		require.Equal(t, "Löschen", de.T("common:delete"))
		require.Equal(t, en.T("roles:addRoleInstructions"), de.T("roles:addRoleInstructions"))
	})

	t.Run("unknown language falls back", func(t *testing.T) {
		require.Equal(t, "en", b.Translator("xx").Lang())
	})
}

func TestBundleMatch(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	require.Equal(t, []string{"en", "de"}, b.Languages())

	cases := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"none", nil, "en"},
		{"accept language", []string{"de-DE,de;q=0.9,en;q=0.8"}, "de"},
		{"regional english", []string{"en-AU"}, "en"},
		{"unsupported", []string{"ja"}, "en"},
		{"first preference wins", []string{"de", "en"}, "de"},
		{"empty skipped", []string{"", "de"}, "de"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, b.Match(tc.prefs...))
		})
	}
}

func TestNewBundleRequiresDefaultLanguage(t *testing.T) {
	_, err := newBundle(map[string][]byte{"de": []byte("roles:\n  title: x\n")})
	require.Error(t, err)

	_, err = newBundle(map[string][]byte{"en": []byte("roles: [")})
	require.Error(t, err)
}

func TestStatic(t *testing.T) {
	s := Static{"greeting": "hi {{name}}"}
	require.Equal(t, "hi bob", s.T("greeting", P("name", "bob")))
	require.Equal(t, "other", s.T("other"))
}
