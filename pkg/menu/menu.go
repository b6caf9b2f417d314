package menu

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Repository when no menu has the requested name.
var ErrNotFound = errors.New("menu not found")

// Menu represents a named collection of hierarchical navigation items.
type Menu struct {
	// ID is the unique identifier of the menu.
	ID int64 `json:"id"`

	// Name is the lookup key of the menu
	Name string `json:"name"`

	// Slug of the menu
	Slug string `json:"slug,omitempty"`

	// Items is the flat list of menu items, ordered by their order key
	Items []Item `json:"items,omitempty"`
}

// Repository fetches a menu together with all of its items in a single call.
// Implementations return ErrNotFound when the menu does not exist and must
// deliver the items ordered by their order key.
type Repository interface {
	FetchMenuWithItems(ctx context.Context, name string) (*Menu, error)
}

// RouteResolver maps a request path to the symbolic name of the matching route.
// An error means the path matches no known route.
type RouteResolver interface {
	ResolveRouteName(path string) (string, error)
}

// RouteResolverFunc adapts a plain function to the RouteResolver interface.
type RouteResolverFunc func(path string) (string, error)

// ResolveRouteName calls f(path).
func (f RouteResolverFunc) ResolveRouteName(path string) (string, error) {
	return f(path)
}
