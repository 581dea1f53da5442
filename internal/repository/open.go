package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Open connects to the configured backend and brings its schema up to date.
// The caller owns the returned DB and must Close it.
func Open(ctx context.Context, dialect Dialect, dsn string, pool PoolConfig) (*DB, error) {
	var (
		conn *sql.DB
		err  error
	)
	switch dialect {
	case DialectSQLite:
		conn, err = NewSQLiteDB(ctx, dsn)
	case DialectPostgres:
		conn, err = NewPostgresDB(ctx, dsn, pool)
	default:
		return nil, fmt.Errorf("Open: unsupported dialect %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}

	if err := Migrate(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, fmt.Errorf("Open: %w", err)
	}

	return NewDB(conn, dialect), nil
}
