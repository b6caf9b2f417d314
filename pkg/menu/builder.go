package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mchmarny/treemenu/pkg/metric"
)

// Render outcomes reported to the counter.
const (
	OutcomeNotFound = "not_found"
	OutcomeActive   = "active"
	OutcomeInactive = "inactive"
	OutcomeError    = "error"
)

// UnknownMenuLabel is the menu label recorded when the name did not resolve to a
// stored menu, keeping the label set bounded by the stored menus.
const UnknownMenuLabel = "unknown"

// Result is the data handed to the page template.
type Result struct {
	// Menu is the rendered menu, nil when no menu has the requested name.
	Menu *Menu `json:"menu"`

	// Tree is the forest of root nodes.
	Tree []*Node `json:"tree,omitempty"`

	// CurrentPath is the request path the tree was built for.
	CurrentPath string `json:"current_path"`

	// Active is the active item, nil when no item matches the path.
	Active *Item `json:"active,omitempty"`
}

// Empty returns true when the menu was not found and nothing should be rendered.
func (r *Result) Empty() bool {
	return r == nil || r.Menu == nil
}

// Builder loads menus and turns them into annotated trees.
type Builder struct {
	repo     Repository
	resolver RouteResolver
	counter  metric.IncrementalCounter
	logger   *slog.Logger
}

// Option is a functional option for configuring the Builder.
type Option func(*Builder)

// WithCounter reports every render outcome, labeled by menu name and outcome.
func WithCounter(c metric.IncrementalCounter) Option {
	return func(b *Builder) { b.counter = c }
}

// WithLogger sets the logger, slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder reading menus from repo and resolving paths with resolver.
func NewBuilder(repo Repository, resolver RouteResolver, opts ...Option) *Builder {
	b := &Builder{
		repo:     repo,
		resolver: resolver,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Render builds the tree of the named menu for currentPath.
// A missing menu yields a Result with a nil Menu and no error.
// Only repository failures other than ErrNotFound are returned.
func (b *Builder) Render(ctx context.Context, menuName, currentPath string) (*Result, error) {
	m, err := b.repo.FetchMenuWithItems(ctx, menuName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			b.logger.Debug("menu not found", "menu", menuName)
			b.count(UnknownMenuLabel, OutcomeNotFound)
			return &Result{CurrentPath: currentPath}, nil
		}
		b.count(UnknownMenuLabel, OutcomeError)
		return nil, fmt.Errorf("failed to fetch menu %q: %w", menuName, err)
	}

	active := FindActive(m.Items, currentPath, b.resolver)

	res := &Result{
		Menu:        m,
		Tree:        BuildTree(m.Items, active),
		CurrentPath: currentPath,
		Active:      active,
	}

	if active != nil {
		b.logger.Debug("menu rendered",
			"menu", menuName,
			"path", currentPath,
			"active", active.ID)
		b.count(m.Name, OutcomeActive)
	} else {
		b.logger.Debug("menu rendered without active item",
			"menu", menuName,
			"path", currentPath)
		b.count(m.Name, OutcomeInactive)
	}

	return res, nil
}

func (b *Builder) count(menuName, outcome string) {
	if b.counter != nil {
		b.counter.Increment(menuName, outcome)
	}
}
