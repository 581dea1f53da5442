package service

import (
	"context"
	"database/sql"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
)

type accountRepository interface {
	Exists(ctx context.Context, accountNumber int64) (bool, error)
	GetByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, accountNumber int64) (*domain.Account, error)
	Create(ctx context.Context, tx *sql.Tx, account *domain.Account) error
	UpdateBalance(ctx context.Context, tx *sql.Tx, accountNumber int64, newBalance int64) error
	UpdatePIN(ctx context.Context, tx *sql.Tx, accountNumber int64, encodedPIN string) error
	Delete(ctx context.Context, tx *sql.Tx, accountNumber int64) error
}

type transactionRepository interface {
	Create(ctx context.Context, tx *sql.Tx, entry *domain.Transaction) error
	ListRecent(ctx context.Context, accountNumber int64, limit int) ([]domain.Transaction, error)
	DeleteByAccount(ctx context.Context, tx *sql.Tx, accountNumber int64) (int64, error)
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
