package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegistry_LookupEveryPage(t *testing.T) {
	reg := NewRegistry()

	want := map[Page]Kind{
		PageHome:     KindStarfield,
		PageAbout:    KindGrid,
		PageEvents:   KindParticles,
		PageSponsors: KindCyberspace,
		PageRegister: KindHelix,
	}
	for page, kind := range want {
		d, ok := reg.Lookup(page)
		require.True(t, ok, "page %s should have a background", page)
		assert.Equal(t, page, d.Page)
		assert.Equal(t, kind, d.Kind)
	}
}

func TestRegistry_UnknownPagesHaveNoBackground(t *testing.T) {
	reg := NewRegistry()

	rapid.Check(t, func(r *rapid.T) {
		p := Page(rapid.String().Filter(func(s string) bool {
			return !Page(s).Valid()
		}).Draw(r, "page"))
		_, ok := reg.Lookup(p)
		if ok {
			r.Fatalf("page %q unexpectedly has a background", p)
		}
	})
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		path string
		page Page
		ok   bool
	}{
		{"/", PageHome, true},
		{"/about", PageAbout, true},
		{"/about/", PageAbout, true},
		{"/events?day=1", PageEvents, true},
		{"/sponsors#gold", PageSponsors, true},
		{"/register", PageRegister, true},
		{"/admin/login", "", false},
		{"/admin/dashboard", "", false},
		{"/aboutus", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d, ok := reg.Resolve(tt.path)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.page, d.Page)
			}
		})
	}
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	reg := NewRegistry()

	d, ok := reg.Lookup(PageSponsors)
	require.True(t, ok)
	d.Palette[0].Color = "#000000"
	d.Grid.Height = 99

	again, _ := reg.Lookup(PageSponsors)
	assert.Equal(t, "#ff3380", again.Palette[0].Color)
	assert.Equal(t, float32(-30), again.Grid.Height)
}

func TestRegistry_Validate(t *testing.T) {
	require.NoError(t, NewRegistry().Validate())

	bad := &Registry{descriptors: map[Page]Descriptor{
		PageEvents: {Page: PageEvents, Palette: []Swatch{{Color: "pink", Weight: 1}}},
	}}
	require.Error(t, bad.Validate())

	skewed := &Registry{descriptors: map[Page]Descriptor{
		PageEvents: {Page: PageEvents, Palette: []Swatch{{Color: "#ffffff", Weight: 0.5}}},
	}}
	require.Error(t, skewed.Validate())
}

func TestRegistry_AllInPageOrder(t *testing.T) {
	all := NewRegistry().All()
	require.Len(t, all, len(Pages()))
	for i, p := range Pages() {
		assert.Equal(t, p, all[i].Page)
	}
}

func TestRegistry_NilHasNoBackground(t *testing.T) {
	var reg *Registry
	_, ok := reg.Lookup(PageHome)
	assert.False(t, ok)
}
