package route

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned when a path matches no route.
	ErrNoMatch = errors.New("no route matches path")

	// ErrNoReverse is returned when a route name is unknown.
	ErrNoReverse = errors.New("no route with name")
)

// Route is a named page path.
type Route struct {
	Name string `yaml:"name" json:"name"`
	Path string `yaml:"path" json:"path"`
}

// Table maps paths to route names and back. It is read-only after construction
// and safe for concurrent use.
type Table struct {
	routes []Route
	byPath map[string]string
	byName map[string]string
}

// NewTable creates a table from routes, rejecting empty or duplicate names and paths.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]string, len(routes)),
		byName: make(map[string]string, len(routes)),
	}

	for _, r := range routes {
		if r.Name == "" || r.Path == "" {
			return nil, fmt.Errorf("route requires name and path: %+v", r)
		}
		if _, ok := t.byName[r.Name]; ok {
			return nil, fmt.Errorf("duplicate route name %q", r.Name)
		}
		if _, ok := t.byPath[r.Path]; ok {
			return nil, fmt.Errorf("duplicate route path %q", r.Path)
		}

		t.byName[r.Name] = r.Path
		t.byPath[r.Path] = r.Name
		t.routes = append(t.routes, r)
	}

	return t, nil
}

// Routes returns the routes in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// ResolveRouteName returns the name of the route whose path equals path.
func (t *Table) ResolveRouteName(path string) (string, error) {
	name, ok := t.byPath[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, path)
	}

	return name, nil
}

// Reverse returns the path of the named route.
func (t *Table) Reverse(name string) (string, error) {
	p, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoReverse, name)
	}

	return p, nil
}
