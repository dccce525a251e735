package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	cases := []struct {
		name string
		cell Cell
		want string
	}{
		{"text", Present("admin"), "admin"},
		{"number", Present(42), "42"},
		{"true", Present(true), "true"},
		{"absent", Absent(), EmptyPlaceholder},
		{"nil", Present(nil), EmptyPlaceholder},
		{"empty string", Present(""), EmptyPlaceholder},
		{"false", Present(false), EmptyPlaceholder},
		{"zero", Present(0), EmptyPlaceholder},
		{"NaN", Present(math.NaN()), EmptyPlaceholder},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := Empty()(tc.cell)
			require.True(t, ok)
			require.False(t, d.IsLink())
			require.Equal(t, tc.want, d.Text)
		})
	}
}

func TestExternalLink(t *testing.T) {
	t.Run("present value links under prefix", func(t *testing.T) {
		d, ok := ExternalLink("roles/")(Present("offline_access"))
		require.True(t, ok)
		require.True(t, d.IsLink())
		require.Equal(t, "roles/offline_access", d.Link.Href)
	})

	t.Run("non-string values use their string form", func(t *testing.T) {
		d, ok := ExternalLink("roles/")(Present(7))
		require.True(t, ok)
		require.Equal(t, "roles/7", d.Link.Href)
	})

	for _, c := range []Cell{Absent(), Present(""), Present(nil)} {
		_, ok := ExternalLink("roles/")(c)
		require.False(t, ok)
	}
}

func TestBool(t *testing.T) {
	cases := []struct {
		name string
		cell Cell
		want string
		ok   bool
	}{
		{"true", Present(true), "True", true},
		{"false", Present(false), "False", true},
		{"string", Present("yes"), "Yes", true},
		{"only first rune", Present("tRUE"), "TRUE", true},
		{"unicode", Present("ärger"), "Ärger", true},
		{"absent", Absent(), "", false},
		{"empty string", Present(""), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := Bool()(tc.cell)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, d.Text)
		})
	}
}

func TestChain(t *testing.T) {
	t.Run("first defined wins", func(t *testing.T) {
		d, ok := Chain(Present(false), Bool(), Empty())
		require.True(t, ok)
		require.Equal(t, "False", d.Text)
	})

	t.Run("falls through to empty", func(t *testing.T) {
		d, ok := Chain(Absent(), Bool(), Empty())
		require.True(t, ok)
		require.Equal(t, EmptyPlaceholder, d.Text)

		d, ok = Chain(Present(""), ExternalLink("roles/"), Empty())
		require.True(t, ok)
		require.Equal(t, EmptyPlaceholder, d.Text)
	})

	t.Run("nothing yields", func(t *testing.T) {
		_, ok := Chain(Absent(), Bool(), ExternalLink("x/"))
		require.False(t, ok)

		_, ok = Chain(Present("x"))
		require.False(t, ok)
	})
}
