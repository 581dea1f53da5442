package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
)

const transactionColumns = `id, account_number, type, amount, created_at`

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends entry to the ledger and sets entry.ID to the assigned
// sequence number.
func (r *TransactionRepository) Create(ctx context.Context, tx *sql.Tx, entry *domain.Transaction) error {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO transactions (account_number, type, amount, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		entry.AccountNumber, entry.Type, entry.Amount, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// ListRecent returns up to limit transactions for the account, newest first
// by insertion sequence.
func (r *TransactionRepository) ListRecent(ctx context.Context, accountNumber int64, limit int) ([]domain.Transaction, error) {
	rows, err := r.db.pool.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE account_number = $1 ORDER BY id DESC LIMIT $2`,
		accountNumber, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer rows.Close()

	entries := []domain.Transaction{}
	for rows.Next() {
		e, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecent: scan: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRecent: rows: %w", err)
	}
	return entries, nil
}

func (r *TransactionRepository) DeleteByAccount(ctx context.Context, tx *sql.Tx, accountNumber int64) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE account_number = $1`, accountNumber,
	)
	if err != nil {
		return 0, fmt.Errorf("DeleteByAccount: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByAccount: rows affected: %w", err)
	}
	return n, nil
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.Scan(&t.ID, &t.AccountNumber, &t.Type, &t.Amount, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
