// Package dbtest opens migrated SQLite databases for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"restaurant-floor/internal/connections/database"
)

// Open returns a migrated SQLite database in a temp dir, closed on cleanup.
func Open(t testing.TB) *database.DB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "floor.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Exec runs a fixture statement written with '?' placeholders.
func Exec(t testing.TB, db *database.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(), db.Rebind(query), args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// Count returns SELECT COUNT(*) FROM table.
func Count(t testing.TB, db *database.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// SeedMenu inserts a dining table and menu items used by order and check
// tests: table 3, Margherita (5) and Tiramisu (7).
func SeedMenu(t testing.TB, db *database.DB) {
	t.Helper()
	Exec(t, db, "INSERT INTO dining_tables (table_id, label, seats) VALUES (?, ?, ?)", 3, "T3", 4)
	Exec(t, db, "INSERT INTO menu_items (item_id, name, cost, sale_price) VALUES (?, ?, ?, ?)", 5, "Margherita", "4.10", "12.50")
	Exec(t, db, "INSERT INTO menu_items (item_id, name, cost, sale_price, image_url) VALUES (?, ?, ?, ?, ?)", 7, "Tiramisu", "2.00", "6.25", "/images/tiramisu.png")
}
