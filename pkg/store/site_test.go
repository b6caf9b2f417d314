package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSite = `
routes:
  - name: home
    path: /
  - name: products
    path: /products/
  - name: laptops
    path: /products/laptops/
menus:
  - name: main
    slug: main-menu
    items:
      - title: Home
        url: /
        order: 1
        items:
          - title: Products
            route: products
            order: 1
            items:
              - title: Laptops
                url: /products/laptops/
                order: 1
      - title: About
        url: /about/
        order: 2
  - name: empty
`

func TestParseSite(t *testing.T) {
	s, err := ParseSite([]byte(testSite))
	require.NoError(t, err)

	require.Len(t, s.Routes, 3)
	require.Len(t, s.Menus, 2)
	assert.Equal(t, "main-menu", s.Menus[0].Slug)
	assert.Equal(t, "products", s.Menus[0].Items[0].Items[0].Route)
	assert.Equal(t, "Laptops", s.Menus[0].Items[0].Items[0].Items[0].Title)

	tbl, err := s.RouteTable()
	require.NoError(t, err)
	name, err := tbl.ResolveRouteName("/products/")
	require.NoError(t, err)
	assert.Equal(t, "products", name)
}

func TestParseSiteInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "malformed", yaml: "menus: [oops"},
		{name: "missing name", yaml: "menus:\n  - slug: x\n"},
		{name: "duplicate name", yaml: "menus:\n  - name: a\n  - name: a\n"},
		{name: "missing title", yaml: "menus:\n  - name: a\n    items:\n      - items:\n          - url: /x/\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSite([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadSite(t *testing.T) {
	p := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(p, []byte(testSite), 0o600))

	s, err := LoadSite(p)
	require.NoError(t, err)
	assert.Len(t, s.Menus, 2)

	_, err = LoadSite(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
