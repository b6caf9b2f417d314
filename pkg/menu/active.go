package menu

// lazyRoute resolves the route name of a path on first use and remembers the outcome.
type lazyRoute struct {
	resolver RouteResolver
	path     string
	done     bool
	name     string
	ok       bool
}

func (l *lazyRoute) get() (string, bool) {
	if !l.done {
		l.done = true
		if l.resolver != nil {
			name, err := l.resolver.ResolveRouteName(l.path)
			l.name, l.ok = name, err == nil
		}
	}

	return l.name, l.ok
}

// FindActive returns the item that corresponds to currentPath, or nil.
// Items are scanned once in order. An exact literal URL match stops the scan.
// Items carrying a route name are compared with the route resolved from
// currentPath; the resolver is called at most once and a resolution error
// counts as no match.
func FindActive(items []Item, currentPath string, resolver RouteResolver) *Item {
	route := &lazyRoute{resolver: resolver, path: currentPath}

	for i := range items {
		item := &items[i]

		if item.URL != "" && item.URL == currentPath {
			return item
		}

		if item.RouteName == "" {
			continue
		}

		if name, ok := route.get(); ok && name == item.RouteName {
			return item
		}
	}

	return nil
}
