package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type scanner interface {
	Scan(dest ...any) error
}

// Dialect names the SQL backend. Values match the database/sql driver names.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// lockSuffix is appended to SELECTs that read a row about to be updated.
// SQLite serialises writers at the database level and has no row locks.
func (d Dialect) lockSuffix() string {
	if d == DialectPostgres {
		return ` FOR UPDATE`
	}
	return ``
}

type DB struct {
	pool    *sql.DB
	dialect Dialect
}

func NewDB(pool *sql.DB, dialect Dialect) *DB {
	return &DB{pool: pool, dialect: dialect}
}

func (d *DB) Conn() *sql.DB {
	return d.pool
}

func (d *DB) Dialect() Dialect {
	return d.dialect
}

func (d *DB) Close() error {
	return d.pool.Close()
}

func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	tx, err := d.pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("BeginTx: %w", err)
	}
	return tx, nil
}
