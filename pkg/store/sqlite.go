package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	// sqlite driver
	_ "modernc.org/sqlite"

	"github.com/mchmarny/treemenu/pkg/menu"
)

const (
	// DriverName is the database/sql driver name registered by modernc.org/sqlite.
	DriverName = "sqlite"

	// MemoryDSN opens a private in-memory database.
	MemoryDSN = ":memory:"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS menus (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		slug TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		menu_id    INTEGER NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
		parent_id  INTEGER REFERENCES menu_items(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		order_key  INTEGER NOT NULL DEFAULT 0,
		url        TEXT NOT NULL DEFAULT '',
		route_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_items_menu ON menu_items(menu_id, order_key)`,
	`CREATE TRIGGER IF NOT EXISTS menu_items_parent_same_menu
		BEFORE INSERT ON menu_items
		WHEN NEW.parent_id IS NOT NULL
			AND (SELECT menu_id FROM menu_items WHERE id = NEW.parent_id) IS NOT NEW.menu_id
		BEGIN
			SELECT RAISE(ABORT, 'parent item belongs to another menu');
		END`,
}

// fetchQuery loads a menu and all of its items in one round trip.
const fetchQuery = `
SELECT m.id, m.name, m.slug,
       i.id, i.parent_id, i.title, i.order_key, i.url, i.route_name
FROM menus m
LEFT JOIN menu_items i ON i.menu_id = m.id
WHERE m.name = ?
ORDER BY i.order_key, i.id`

var _ menu.Repository = (*Store)(nil)

// Store is a menu.Repository backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the database at dsn and enables foreign keys.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", dsn, err)
	}

	// a single connection keeps in-memory databases and pragmas consistent
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	slog.Debug("sqlite store opened", "dsn", dsn)

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	return nil
}

// FetchMenuWithItems returns the named menu with its items ordered by order key.
// It returns menu.ErrNotFound when no menu has that name.
func (s *Store) FetchMenuWithItems(ctx context.Context, name string) (*menu.Menu, error) {
	rows, err := s.db.QueryContext(ctx, fetchQuery, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu %q: %w", name, err)
	}
	defer rows.Close()

	var m *menu.Menu

	for rows.Next() {
		var (
			mm        menu.Menu
			id        sql.NullInt64
			parentID  sql.NullInt64
			title     sql.NullString
			order     sql.NullInt64
			url       sql.NullString
			routeName sql.NullString
		)

		if err := rows.Scan(&mm.ID, &mm.Name, &mm.Slug,
			&id, &parentID, &title, &order, &url, &routeName); err != nil {
			return nil, fmt.Errorf("failed to scan menu %q: %w", name, err)
		}

		if m == nil {
			m = &mm
		}

		// menu without items
		if !id.Valid {
			continue
		}

		item := menu.Item{
			ID:        id.Int64,
			MenuID:    m.ID,
			Title:     title.String,
			Order:     int(order.Int64),
			URL:       url.String,
			RouteName: routeName.String,
		}
		if parentID.Valid {
			p := parentID.Int64
			item.ParentID = &p
		}

		m.Items = append(m.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu %q: %w", name, err)
	}

	if m == nil {
		return nil, fmt.Errorf("%w: %s", menu.ErrNotFound, name)
	}

	return m, nil
}

// Seed inserts the menus of site in a single transaction.
// Nested items are stored with a reference to their parent.
// Menus already present are left untouched.
func (s *Store) Seed(ctx context.Context, site *Site) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, sm := range site.Menus {
		var existing int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM menus WHERE name = ?", sm.Name).Scan(&existing)
		if err == nil {
			slog.Debug("menu already seeded", "menu", sm.Name, "id", existing)
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up menu %q: %w", sm.Name, err)
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO menus (name, slug) VALUES (?, ?)", sm.Name, sm.Slug)
		if err != nil {
			return fmt.Errorf("failed to insert menu %q: %w", sm.Name, err)
		}

		menuID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read menu id %q: %w", sm.Name, err)
		}

		if err := insertItems(ctx, tx, menuID, nil, sm.Items); err != nil {
			return fmt.Errorf("failed to insert items of menu %q: %w", sm.Name, err)
		}

		slog.Debug("menu seeded", "menu", sm.Name, "id", menuID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertItems(ctx context.Context, tx *sql.Tx, menuID int64, parentID *int64, items []SiteItem) error {
	for _, it := range items {
		id, err := insertItem(ctx, tx, menu.Item{
			MenuID:    menuID,
			ParentID:  parentID,
			Title:     it.Title,
			Order:     it.Order,
			URL:       it.URL,
			RouteName: it.Route,
		})
		if err != nil {
			return err
		}

		if err := insertItems(ctx, tx, menuID, &id, it.Items); err != nil {
			return err
		}
	}

	return nil
}

// insertItem stores a single item and returns its ID.
// The schema trigger rejects a parent from another menu.
func insertItem(ctx context.Context, db execer, item menu.Item) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO menu_items (menu_id, parent_id, title, order_key, url, route_name)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.MenuID, item.ParentID, item.Title, item.Order, item.URL, item.RouteName)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item %q: %w", item.Title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read item id %q: %w", item.Title, err)
	}

	return id, nil
}

// Ready pings the database.
func (s *Store) Ready(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
