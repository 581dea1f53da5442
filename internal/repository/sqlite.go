package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB opens the embedded store at path with foreign keys enforced.
// A single connection is used so that every statement sees the same
// transaction state and writers never contend for the file lock.
func NewSQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("NewSQLiteDB: open: %w", err)
	}

	applyPool(db, PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1})

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("NewSQLiteDB: ping: %w", err)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000"}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	var add []string
	for _, p := range params {
		key := p[:strings.Index(p, "=")+1]
		if !strings.Contains(path, key) {
			add = append(add, p)
		}
	}
	if len(add) == 0 {
		return path
	}
	return path + sep + strings.Join(add, "&")
}
