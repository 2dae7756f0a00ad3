package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"restaurant-floor/internal/config"
)

// Dialect selects the SQL variant a repository must emit.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB is the shared handle injected into every repository.
type DB struct {
	*sql.DB
	Dialect Dialect
}

const (
	maxRetries = 10
	retryDelay = 2 * time.Second
	pingTTL    = 5 * time.Second
)

// Open connects using cfg. Postgres connections are retried the way a
// service waits for its database container to come up.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case config.DriverPostgres, "":
		return openPostgres(ctx, cfg.DSN(), maxRetries, retryDelay)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, dsn string, retries int, delay time.Duration) (*DB, error) {
	var (
		pool *pgxpool.Pool
		err  error
	)
	for i := 1; i <= retries; i++ {
		pool, err = pgxpool.New(ctx, dsn)
		if err == nil {
			pctx, cancel := context.WithTimeout(ctx, pingTTL)
			err = pool.Ping(pctx)
			cancel()
			if err == nil {
				return &DB{DB: stdlib.OpenDBFromPool(pool), Dialect: Postgres}, nil
			}
			pool.Close()
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("db connect canceled: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", retries, err)
}

// OpenSQLite opens (creating if needed) a SQLite database file with foreign
// keys enforced.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &DB{DB: sqlDB, Dialect: SQLite}, nil
}

// Rebind rewrites '?' placeholders into the dialect's form.
func (d *DB) Rebind(query string) string {
	return Rebind(d.Dialect, query)
}

func Rebind(dialect Dialect, query string) string {
	if dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ping is the readiness probe used by the health endpoint.
func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return fmt.Errorf("database is not configured")
	}
	pctx, cancel := context.WithTimeout(ctx, pingTTL)
	defer cancel()
	return d.PingContext(pctx)
}

// InTx runs fn inside one transaction: commit when fn returns nil, roll
// back otherwise.
func (d *DB) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
