package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/josh-kwaku/atm-simulator/internal/auth"
	"github.com/josh-kwaku/atm-simulator/internal/config"
	"github.com/josh-kwaku/atm-simulator/internal/domain"
	"github.com/josh-kwaku/atm-simulator/internal/interest"
	"github.com/josh-kwaku/atm-simulator/internal/logging"
	"github.com/shopspring/decimal"
)

// Ledger owns account balances and their transaction history. Every
// exported mutation runs in a single database transaction: it either
// commits all of its row changes or none of them.
type Ledger struct {
	accounts     accountRepository
	transactions transactionRepository
	pins         auth.PINHasher
	interest     *interest.Calculator
	db           txBeginner
	config       *config.Config
}

func NewLedger(
	accounts accountRepository,
	transactions transactionRepository,
	pins auth.PINHasher,
	calc *interest.Calculator,
	db txBeginner,
	cfg *config.Config,
) *Ledger {
	return &Ledger{
		accounts:     accounts,
		transactions: transactions,
		pins:         pins,
		interest:     calc,
		db:           db,
		config:       cfg,
	}
}

func (l *Ledger) Deposit(ctx context.Context, accountNumber, amount int64) (int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("Deposit: begin tx: %w", err)
	}
	defer tx.Rollback()

	acct, err := l.lockAccount(ctx, tx, accountNumber, domain.ErrAccountNotFound)
	if err != nil {
		return 0, fmt.Errorf("Deposit: %w", err)
	}

	newBalance, err := l.credit(ctx, tx, acct, amount, now())
	if err != nil {
		return 0, fmt.Errorf("Deposit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("Deposit: commit: %w", err)
	}

	logging.FromContext(ctx).Info("deposit completed",
		"account_number", accountNumber,
		"amount", amount,
		"balance", newBalance,
	)
	return newBalance, nil
}

func (l *Ledger) Withdraw(ctx context.Context, accountNumber, amount int64) (int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("Withdraw: begin tx: %w", err)
	}
	defer tx.Rollback()

	acct, err := l.lockAccount(ctx, tx, accountNumber, domain.ErrAccountNotFound)
	if err != nil {
		return 0, fmt.Errorf("Withdraw: %w", err)
	}

	newBalance, err := l.debit(ctx, tx, acct, amount, now())
	if err != nil {
		return 0, fmt.Errorf("Withdraw: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("Withdraw: commit: %w", err)
	}

	logging.FromContext(ctx).Info("withdrawal completed",
		"account_number", accountNumber,
		"amount", amount,
		"balance", newBalance,
	)
	return newBalance, nil
}

// AddInterest credits balance * ratePct / 100 through the deposit path.
// A computed interest of zero succeeds without writing anything.
func (l *Ledger) AddInterest(ctx context.Context, accountNumber int64, ratePct decimal.Decimal) (*domain.Interest, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("AddInterest: begin tx: %w", err)
	}
	defer tx.Rollback()

	acct, err := l.lockAccount(ctx, tx, accountNumber, domain.ErrAccountNotFound)
	if err != nil {
		return nil, fmt.Errorf("AddInterest: %w", err)
	}

	amount, err := l.interest.Compute(acct.Balance, ratePct)
	if err != nil {
		return nil, fmt.Errorf("AddInterest: %w", err)
	}
	if amount == 0 {
		return &domain.Interest{Amount: 0, NewBalance: acct.Balance}, nil
	}

	newBalance, err := l.credit(ctx, tx, acct, amount, now())
	if err != nil {
		return nil, fmt.Errorf("AddInterest: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("AddInterest: commit: %w", err)
	}

	logging.FromContext(ctx).Info("interest added",
		"account_number", accountNumber,
		"rate_pct", ratePct.String(),
		"amount", amount,
		"balance", newBalance,
	)
	return &domain.Interest{Amount: amount, NewBalance: newBalance}, nil
}

// RecentTransactions returns the newest transactions first. limit <= 0
// selects the configured statement length.
func (l *Ledger) RecentTransactions(ctx context.Context, accountNumber int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = l.config.StatementLimit
	}
	entries, err := l.transactions.ListRecent(ctx, accountNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("RecentTransactions: %w", err)
	}
	return entries, nil
}

func (l *Ledger) credit(ctx context.Context, tx *sql.Tx, acct *domain.Account, amount int64, at time.Time) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit: %w", domain.ErrInvalidAmount)
	}
	newBalance := acct.Balance + amount
	if newBalance < acct.Balance {
		return 0, fmt.Errorf("credit: balance overflow: %w", domain.ErrInvalidAmount)
	}
	if err := l.apply(ctx, tx, acct, domain.TransactionTypeDeposit, amount, newBalance, at); err != nil {
		return 0, fmt.Errorf("credit: %w", err)
	}
	return newBalance, nil
}

func (l *Ledger) debit(ctx context.Context, tx *sql.Tx, acct *domain.Account, amount int64, at time.Time) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit: %w", domain.ErrInvalidAmount)
	}
	if acct.Balance < amount {
		return 0, fmt.Errorf("debit: %w", domain.ErrInsufficientFunds)
	}
	newBalance := acct.Balance - amount
	if err := l.apply(ctx, tx, acct, domain.TransactionTypeWithdrawal, amount, newBalance, at); err != nil {
		return 0, fmt.Errorf("debit: %w", err)
	}
	return newBalance, nil
}

// apply writes the new balance and its ledger row. acct is updated in place
// so a second leg in the same tx sees the current balance.
func (l *Ledger) apply(ctx context.Context, tx *sql.Tx, acct *domain.Account, typ domain.TransactionType, amount, newBalance int64, at time.Time) error {
	if err := l.accounts.UpdateBalance(ctx, tx, acct.AccountNumber, newBalance); err != nil {
		return fmt.Errorf("apply: update balance: %w", err)
	}

	entry := &domain.Transaction{
		AccountNumber: acct.AccountNumber,
		Type:          typ,
		Amount:        amount,
		CreatedAt:     at,
	}
	if err := l.transactions.Create(ctx, tx, entry); err != nil {
		return fmt.Errorf("apply: append %s: %w", typ, err)
	}

	acct.Balance = newBalance
	return nil
}

// lockAccount reads the account inside tx, reporting a missing row as
// notFound.
func (l *Ledger) lockAccount(ctx context.Context, tx *sql.Tx, accountNumber int64, notFound error) (*domain.Account, error) {
	acct, err := l.accounts.GetForUpdate(ctx, tx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lockAccount %d: %w", accountNumber, notFound)
		}
		return nil, fmt.Errorf("lockAccount %d: %w", accountNumber, err)
	}
	return acct, nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
