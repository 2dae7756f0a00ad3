package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/domain"
)

type WaitlistRepositoryInterface interface {
	Insert(ctx context.Context, name string, partySize int, comment *string, registeredAt time.Time) (domain.WaitListEntry, error)
	List(ctx context.Context) ([]domain.WaitListEntry, error)
	// MarkSeated flips is_seated to true. seated_at keeps the first seating
	// instant, so repeating the call changes nothing. Returns sql.ErrNoRows
	// for an unknown id.
	MarkSeated(ctx context.Context, waitID int64, seatedAt time.Time) (domain.WaitListEntry, error)
}

type WaitlistRepository struct {
	db *database.DB
}

func NewWaitlistRepository(db *database.DB) WaitlistRepositoryInterface {
	return &WaitlistRepository{db: db}
}

const entryColumns = `wait_id, name, party_size, comment, registered_at, is_seated, seated_at`

func (r *WaitlistRepository) Insert(ctx context.Context, name string, partySize int, comment *string, registeredAt time.Time) (domain.WaitListEntry, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(`
		INSERT INTO wait_list (name, party_size, comment, registered_at, is_seated)
		VALUES (?, ?, ?, ?, FALSE)
		RETURNING `+entryColumns), name, partySize, comment, registeredAt.UTC())
	e, err := scanEntry(row)
	if err != nil {
		return domain.WaitListEntry{}, fmt.Errorf("failed to insert wait list entry: %w", err)
	}
	return e, nil
}

func (r *WaitlistRepository) List(ctx context.Context) ([]domain.WaitListEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM wait_list
		ORDER BY is_seated ASC, registered_at ASC, wait_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list wait list: %w", err)
	}
	defer rows.Close()

	out := make([]domain.WaitListEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wait list entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *WaitlistRepository) MarkSeated(ctx context.Context, waitID int64, seatedAt time.Time) (domain.WaitListEntry, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(`
		UPDATE wait_list
		SET is_seated = TRUE,
		    seated_at = COALESCE(seated_at, ?)
		WHERE wait_id = ?
		RETURNING `+entryColumns), seatedAt.UTC(), waitID)
	e, err := scanEntry(row)
	if err != nil {
		return domain.WaitListEntry{}, fmt.Errorf("failed to seat party %d: %w", waitID, err)
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (domain.WaitListEntry, error) {
	var (
		e          domain.WaitListEntry
		comment    sql.NullString
		registered database.Timestamp
		seated     database.Timestamp
	)
	if err := s.Scan(&e.WaitID, &e.Name, &e.PartySize, &comment, &registered, &e.IsSeated, &seated); err != nil {
		return domain.WaitListEntry{}, err
	}
	if comment.Valid {
		c := comment.String
		e.Comment = &c
	}
	e.RegisteredAt = registered.Time
	e.SeatedAt = seated.Ptr()
	return e, nil
}
