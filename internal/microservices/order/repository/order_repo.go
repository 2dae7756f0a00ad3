package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/domain"
)

type OrderRepositoryInterface interface {
	// CreateOrderTx inserts the order and all of its lines in one
	// transaction. Line ids come back in input order. On any error nothing
	// is persisted.
	CreateOrderTx(ctx context.Context, tableID int64, lines []domain.OrderLine, now time.Time) (orderID int64, orderItemIDs []int64, err error)
}

type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

func (or *OrderRepository) CreateOrderTx(ctx context.Context, tableID int64, lines []domain.OrderLine, now time.Time) (int64, []int64, error) {
	if len(lines) == 0 {
		return 0, nil, fmt.Errorf("order has no lines")
	}
	now = now.UTC()

	var (
		orderID int64
		itemIDs []int64
	)
	err := or.db.InTx(ctx, func(tx *sql.Tx) error {
		// 1. Insert order
		if err := tx.QueryRowContext(ctx, or.db.Rebind(`
			INSERT INTO orders (table_id, ordered_at)
			VALUES (?, ?)
			RETURNING order_id
		`), tableID, now).Scan(&orderID); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		// 2. Insert the order items, in as few statements as the driver allows
		batches, err := or.bulkInsertItems(orderID, lines, now)
		if err != nil {
			return err
		}
		for _, b := range batches {
			ids, err := insertReturningIDs(ctx, tx, b.query, b.args)
			if err != nil {
				return fmt.Errorf("failed to insert order items: %w", err)
			}
			itemIDs = append(itemIDs, ids...)
		}
		if len(itemIDs) != len(lines) {
			return fmt.Errorf("inserted %d order items, want %d", len(itemIDs), len(lines))
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	// ids are allocated in insertion order, which follows the input order
	slices.Sort(itemIDs)
	return orderID, itemIDs, nil
}

// sqliteBatchLines keeps each multi-row insert under SQLite's bound
// parameter limit (four parameters per line).
const sqliteBatchLines = 200

type insertBatch struct {
	query string
	args  []any
}

func insertReturningIDs(ctx context.Context, tx *sql.Tx, query string, args []any) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, rows.Close()
}

func (or *OrderRepository) bulkInsertItems(orderID int64, lines []domain.OrderLine, now time.Time) ([]insertBatch, error) {
	if or.db.Dialect == database.Postgres {
		itemIDs := make([]int64, len(lines))
		quantities := make([]int32, len(lines))
		for i, l := range lines {
			if l.Quantity <= 0 || l.Quantity > math.MaxInt32 {
				return nil, fmt.Errorf("line %d: quantity %d out of range", i, l.Quantity)
			}
			itemIDs[i] = l.ItemID
			quantities[i] = int32(l.Quantity)
		}
		return []insertBatch{{query: `
			INSERT INTO order_items (order_id, item_id, quantity, discount, created_at)
			SELECT $1::bigint, t.item_id, t.quantity, 0, $2::timestamptz
			FROM UNNEST($3::bigint[], $4::int[]) WITH ORDINALITY AS t(item_id, quantity, ord)
			ORDER BY t.ord
			RETURNING order_item_id
		`, args: []any{orderID, now, itemIDs, quantities}}}, nil
	}

	var batches []insertBatch
	for chunk := range slices.Chunk(lines, sqliteBatchLines) {
		var b strings.Builder
		b.WriteString(`INSERT INTO order_items (order_id, item_id, quantity, discount, created_at) VALUES `)
		args := make([]any, 0, len(chunk)*4)
		for i, l := range chunk {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("(?, ?, ?, '0', ?)")
			args = append(args, orderID, l.ItemID, l.Quantity, now)
		}
		b.WriteString(" RETURNING order_item_id")
		batches = append(batches, insertBatch{query: b.String(), args: args})
	}
	return batches, nil
}
