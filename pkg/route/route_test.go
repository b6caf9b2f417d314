package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(
		Route{Name: "home", Path: "/"},
		Route{Name: "products", Path: "/products/"},
		Route{Name: "laptops", Path: "/products/laptops/"},
	)
	require.NoError(t, err)
	return tbl
}

func TestResolveRouteName(t *testing.T) {
	tbl := testTable(t)

	name, err := tbl.ResolveRouteName("/products/laptops/")
	require.NoError(t, err)
	assert.Equal(t, "laptops", name)

	_, err = tbl.ResolveRouteName("/products/laptops")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = tbl.ResolveRouteName("/admin/")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestReverse(t *testing.T) {
	tbl := testTable(t)

	p, err := tbl.Reverse("products")
	require.NoError(t, err)
	assert.Equal(t, "/products/", p)

	_, err = tbl.Reverse("missing")
	assert.ErrorIs(t, err, ErrNoReverse)
}

func TestNewTableRejects(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
	}{
		{name: "empty name", routes: []Route{{Path: "/"}}},
		{name: "empty path", routes: []Route{{Name: "home"}}},
		{name: "duplicate name", routes: []Route{{Name: "a", Path: "/a/"}, {Name: "a", Path: "/b/"}}},
		{name: "duplicate path", routes: []Route{{Name: "a", Path: "/a/"}, {Name: "b", Path: "/a/"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.routes...)
			assert.Error(t, err)
		})
	}
}

func TestRoutesReturnsCopy(t *testing.T) {
	tbl := testTable(t)

	r := tbl.Routes()
	require.Len(t, r, 3)
	r[0].Name = "changed"
	assert.Equal(t, "home", tbl.Routes()[0].Name)
}
