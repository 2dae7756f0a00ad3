package repository

import (
	"context"
	"fmt"

	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/domain"
)

type TablesRepositoryInterface interface {
	List(ctx context.Context) ([]domain.Table, error)
}

type TablesRepository struct {
	db *database.DB
}

func NewTablesRepository(db *database.DB) TablesRepositoryInterface {
	return &TablesRepository{db: db}
}

func (r *TablesRepository) List(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT table_id, label, seats
		FROM dining_tables
		ORDER BY table_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Table, 0)
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.TableID, &t.Label, &t.Seats); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
