package database

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"restaurant-floor/internal/connections/database/migrations"
)

const migrationTable = "schema_migrations"

// Migrate applies the embedded schema for the handle's dialect.
func (d *DB) Migrate(ctx context.Context) (int, error) {
	sub, err := fs.Sub(migrations.FS, string(d.Dialect))
	if err != nil {
		return 0, fmt.Errorf("migrations for %s: %w", d.Dialect, err)
	}
	return d.ApplyMigrations(ctx, sub)
}

// ApplyMigrations executes every *.sql file in migrationFS at most once,
// in lexical order, each inside its own transaction. It returns how many
// files were applied.
func (d *DB) ApplyMigrations(ctx context.Context, migrationFS fs.FS) (int, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return 0, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if _, err := d.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`, migrationTable)); err != nil {
		return 0, fmt.Errorf("ensure migration table: %w", err)
	}

	applied := 0
	for _, file := range files {
		var n int
		if err := d.QueryRowContext(ctx,
			d.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE name = ?", migrationTable)), file,
		).Scan(&n); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", file, err)
		}
		if n > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, path.Clean(file))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}
		up := ExtractUpMigration(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}

		tx, err := d.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration transaction %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, up); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx,
			d.Rebind(fmt.Sprintf("INSERT INTO %s (name, applied_at) VALUES (?, ?)", migrationTable)),
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %s: %w", file, err)
		}
		applied++
	}
	return applied, nil
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, "-- +migrate Up")
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, "-- +migrate Down")
	if downIdx == -1 {
		return content[upIdx+len("-- +migrate Up"):]
	}
	return content[upIdx+len("-- +migrate Up") : downIdx]
}
