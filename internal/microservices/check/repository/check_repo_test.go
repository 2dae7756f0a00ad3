package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"restaurant-floor/internal/connections/database/dbtest"
)

const ts = "2026-10-19 20:00:00"

func TestItemsTraversesCheckOrders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := dbtest.Open(t)
	dbtest.SeedMenu(t, db)

	dbtest.Exec(t, db, "INSERT INTO orders (order_id, table_id, ordered_at) VALUES (1, 3, ?), (2, 3, ?), (3, 3, ?)", ts, ts, ts)
	dbtest.Exec(t, db, `INSERT INTO order_items (order_item_id, order_id, item_id, quantity, discount, created_at) VALUES
		(10, 1, 5, 2, '0', ?),
		(11, 1, 7, 1, '1.25', ?),
		(12, 2, 5, 3, '0', ?),
		(13, 3, 7, 9, '0', ?)`, ts, ts, ts, ts)
	dbtest.Exec(t, db, "INSERT INTO checks (check_id, is_paid, created_at) VALUES (1, FALSE, ?), (2, TRUE, ?)", ts, ts)
	dbtest.Exec(t, db, "INSERT INTO check_orders (check_id, order_id) VALUES (1, 1), (1, 2), (2, 3)")

	repo := NewCheckRepository(db)
	items, err := repo.Items(ctx, 1)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	if total != 6 {
		t.Fatalf("quantity sum = %d, want 6", total)
	}
	if items[0].OrderItemID != 10 || items[1].OrderItemID != 11 || items[2].OrderItemID != 12 {
		t.Fatalf("order = %d,%d,%d", items[0].OrderItemID, items[1].OrderItemID, items[2].OrderItemID)
	}
	if !items[0].LineTotal.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("line total = %s", items[0].LineTotal)
	}
	if !items[1].LineTotal.Equal(decimal.RequireFromString("5.00")) || items[1].ImageURL == nil || *items[1].ImageURL != "/images/tiramisu.png" {
		t.Fatalf("tiramisu = %+v", items[1])
	}
	if items[0].ImageURL != nil {
		t.Fatalf("margherita image = %v", *items[0].ImageURL)
	}

	open, err := repo.ListOpen(ctx)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 1 || open[0].CheckID != 1 || open[0].IsPaid {
		t.Fatalf("open = %+v", open)
	}
}

func TestItemsEmptyAndExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := dbtest.Open(t)
	dbtest.Exec(t, db, "INSERT INTO checks (check_id, is_paid, created_at) VALUES (4, FALSE, ?)", ts)
	repo := NewCheckRepository(db)

	items, err := repo.Items(ctx, 4)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("items = %#v, want empty slice", items)
	}

	if ok, err := repo.Exists(ctx, 4); err != nil || !ok {
		t.Fatalf("Exists(4) = %v, %v", ok, err)
	}
	if ok, err := repo.Exists(ctx, 5); err != nil || ok {
		t.Fatalf("Exists(5) = %v, %v", ok, err)
	}
}
