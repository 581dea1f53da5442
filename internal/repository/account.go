package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
)

const accountColumns = `account_number, pin, balance, created_at`

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Exists(ctx context.Context, accountNumber int64) (bool, error) {
	var exists bool
	err := r.db.pool.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	row := r.db.pool.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, accountNumber,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByNumber: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByNumber: %w", err)
	}
	return a, nil
}

// GetForUpdate reads the account inside tx, taking a row lock where the
// backend supports one.
func (r *AccountRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, accountNumber int64) (*domain.Account, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`+r.db.dialect.lockSuffix(), accountNumber,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) Create(ctx context.Context, tx *sql.Tx, account *domain.Account) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES ($1, $2, $3, $4)`,
		account.AccountNumber, account.PIN, account.Balance, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, tx *sql.Tx, accountNumber int64, newBalance int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = $1 WHERE account_number = $2`,
		newBalance, accountNumber,
	)
	if err != nil {
		return fmt.Errorf("UpdateBalance: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("UpdateBalance: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdatePIN(ctx context.Context, tx *sql.Tx, accountNumber int64, encodedPIN string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE accounts SET pin = $1 WHERE account_number = $2`,
		encodedPIN, accountNumber,
	)
	if err != nil {
		return fmt.Errorf("UpdatePIN: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("UpdatePIN: %w", err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, tx *sql.Tx, accountNumber int64) error {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM accounts WHERE account_number = $1`, accountNumber,
	)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func expectOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAccount(s scanner) (*domain.Account, error) {
	var a domain.Account
	err := s.Scan(&a.AccountNumber, &a.PIN, &a.Balance, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
