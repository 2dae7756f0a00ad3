package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/domain"
)

type CheckRepositoryInterface interface {
	ListOpen(ctx context.Context) ([]domain.Check, error)
	Exists(ctx context.Context, checkID int64) (bool, error)
	// Items returns one row per order line linked to the check, ordered by
	// order then line. An existing check with no orders yields an empty slice.
	Items(ctx context.Context, checkID int64) ([]domain.CheckItem, error)
}

type CheckRepository struct {
	db *database.DB
}

func NewCheckRepository(db *database.DB) CheckRepositoryInterface {
	return &CheckRepository{db: db}
}

func (r *CheckRepository) ListOpen(ctx context.Context) ([]domain.Check, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT check_id, is_paid, created_at
		FROM checks
		WHERE is_paid = FALSE
		ORDER BY check_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list open checks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Check, 0)
	for rows.Next() {
		var (
			c       domain.Check
			created database.Timestamp
		)
		if err := rows.Scan(&c.CheckID, &c.IsPaid, &created); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		c.CreatedAt = created.Time
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CheckRepository) Exists(ctx context.Context, checkID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT 1 FROM checks WHERE check_id = ?`), checkID).Scan(&one)
	if database.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up check %d: %w", checkID, err)
	}
	return true, nil
}

func (r *CheckRepository) Items(ctx context.Context, checkID int64) ([]domain.CheckItem, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT oi.order_item_id, oi.order_id, oi.item_id, mi.name, mi.sale_price, mi.image_url,
		       oi.quantity, oi.discount
		FROM check_orders co
		JOIN orders o       ON o.order_id = co.order_id
		JOIN order_items oi ON oi.order_id = o.order_id
		JOIN menu_items mi  ON mi.item_id = oi.item_id
		WHERE co.check_id = ?
		ORDER BY oi.order_id ASC, oi.order_item_id ASC`), checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items of check %d: %w", checkID, err)
	}
	defer rows.Close()

	out := make([]domain.CheckItem, 0)
	for rows.Next() {
		var (
			it       domain.CheckItem
			imageURL sql.NullString
			price    decimal.Decimal
			discount decimal.Decimal
		)
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ItemID, &it.Name, &price, &imageURL, &it.Quantity, &discount); err != nil {
			return nil, fmt.Errorf("failed to scan check item: %w", err)
		}
		if imageURL.Valid {
			u := imageURL.String
			it.ImageURL = &u
		}
		it.SalePrice = price
		it.Discount = discount
		it.LineTotal = domain.Bill(price, it.Quantity, discount)
		out = append(out, it)
	}
	return out, rows.Err()
}
