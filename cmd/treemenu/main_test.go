package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/treemenu/pkg/menu"
	"github.com/mchmarny/treemenu/pkg/store"
)

func TestDefaultSite(t *testing.T) {
	s, err := loadSite("")
	require.NoError(t, err)

	routes, err := s.RouteTable()
	require.NoError(t, err)

	ctx := context.Background()
	db, err := store.Open(ctx, store.MemoryDSN)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Seed(ctx, s))

	res, err := menu.NewBuilder(db, routes).Render(ctx, "main", "/products/laptops/")
	require.NoError(t, err)
	require.NotNil(t, res.Active)
	assert.Equal(t, "Laptops", res.Active.Title)

	res, err = menu.NewBuilder(db, routes).Render(ctx, "main", "/about/")
	require.NoError(t, err)
	require.NotNil(t, res.Active)
	assert.Equal(t, "About", res.Active.Title)

	for _, r := range routes.Routes() {
		_, err := menu.NewBuilder(db, routes).Render(ctx, "footer", r.Path)
		assert.NoError(t, err)
	}
}
