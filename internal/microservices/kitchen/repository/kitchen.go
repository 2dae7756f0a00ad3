package repository

import (
	"context"
	"fmt"

	"restaurant-floor/internal/connections/database"
)

type KitchenRepositoryInterface interface {
	// CountLines returns how many order_items rows the order has. Zero means
	// the order is unknown.
	CountLines(ctx context.Context, orderID int64) (int, error)
}

type KitchenRepository struct {
	db *database.DB
}

func NewKitchenRepository(db *database.DB) KitchenRepositoryInterface {
	return &KitchenRepository{db: db}
}

func (kr *KitchenRepository) CountLines(ctx context.Context, orderID int64) (int, error) {
	var n int
	err := kr.db.QueryRowContext(ctx, kr.db.Rebind(`
		SELECT COUNT(*)
		FROM order_items
		WHERE order_id = ?`), orderID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count lines of order %d: %w", orderID, err)
	}
	return n, nil
}
