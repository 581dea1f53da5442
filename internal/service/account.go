package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
	"github.com/josh-kwaku/atm-simulator/internal/logging"
)

func (l *Ledger) AccountExists(ctx context.Context, accountNumber int64) (bool, error) {
	exists, err := l.accounts.Exists(ctx, accountNumber)
	if err != nil {
		return false, fmt.Errorf("AccountExists: %w", err)
	}
	return exists, nil
}

// CreateAccount opens an account with the given starting balance. No
// transaction row is written for the initial balance.
func (l *Ledger) CreateAccount(ctx context.Context, accountNumber int64, pin int, initialBalance int64) (*domain.Details, error) {
	if initialBalance < 0 {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrInvalidAmount)
	}

	encoded, err := l.pins.Hash(pin)
	if err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateAccount: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = l.accounts.GetForUpdate(ctx, tx, accountNumber)
	if err == nil {
		return nil, fmt.Errorf("CreateAccount: %d: %w", accountNumber, domain.ErrAccountExists)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("CreateAccount: check existing: %w", err)
	}

	account := &domain.Account{
		AccountNumber: accountNumber,
		PIN:           encoded,
		Balance:       initialBalance,
		CreatedAt:     now(),
	}
	if err := l.accounts.Create(ctx, tx, account); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("CreateAccount: commit: %w", err)
	}

	logging.FromContext(ctx).Info("account created",
		"account_number", accountNumber,
		"pin_hasher", l.pins.Name(),
	)

	details := account.Details()
	return &details, nil
}

func (l *Ledger) GetBalance(ctx context.Context, accountNumber int64) (int64, error) {
	acct, err := l.getAccount(ctx, accountNumber)
	if err != nil {
		return 0, fmt.Errorf("GetBalance: %w", err)
	}
	return acct.Balance, nil
}

func (l *Ledger) GetDetails(ctx context.Context, accountNumber int64) (*domain.Details, error) {
	acct, err := l.getAccount(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("GetDetails: %w", err)
	}
	details := acct.Details()
	return &details, nil
}

// Authenticate reports ErrAuthFailed both for an unknown account and for a
// wrong PIN. It does not log; the caller decides how loud a rejected login is.
func (l *Ledger) Authenticate(ctx context.Context, accountNumber int64, pin int) error {
	acct, err := l.accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("Authenticate: unknown account: %w", domain.ErrAuthFailed)
		}
		return fmt.Errorf("Authenticate: %w", err)
	}

	if !l.pins.Verify(acct.PIN, pin) {
		return fmt.Errorf("Authenticate: pin mismatch: %w", domain.ErrAuthFailed)
	}
	return nil
}

func (l *Ledger) ChangePIN(ctx context.Context, accountNumber int64, oldPIN, newPIN int) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ChangePIN: begin tx: %w", err)
	}
	defer tx.Rollback()

	acct, err := l.lockAccount(ctx, tx, accountNumber, domain.ErrAccountNotFound)
	if err != nil {
		return fmt.Errorf("ChangePIN: %w", err)
	}

	if !l.pins.Verify(acct.PIN, oldPIN) {
		return fmt.Errorf("ChangePIN: %w", domain.ErrAuthFailed)
	}

	encoded, err := l.pins.Hash(newPIN)
	if err != nil {
		return fmt.Errorf("ChangePIN: %w", err)
	}
	if err := l.accounts.UpdatePIN(ctx, tx, accountNumber, encoded); err != nil {
		return fmt.Errorf("ChangePIN: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ChangePIN: commit: %w", err)
	}

	logging.FromContext(ctx).Info("pin changed", "account_number", accountNumber)
	return nil
}

// CloseAccount deletes the account and every transaction that references it.
func (l *Ledger) CloseAccount(ctx context.Context, accountNumber int64) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("CloseAccount: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := l.lockAccount(ctx, tx, accountNumber, domain.ErrAccountNotFound); err != nil {
		return fmt.Errorf("CloseAccount: %w", err)
	}

	removed, err := l.transactions.DeleteByAccount(ctx, tx, accountNumber)
	if err != nil {
		return fmt.Errorf("CloseAccount: %w", err)
	}
	if err := l.accounts.Delete(ctx, tx, accountNumber); err != nil {
		return fmt.Errorf("CloseAccount: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("CloseAccount: commit: %w", err)
	}

	logging.FromContext(ctx).Info("account closed",
		"account_number", accountNumber,
		"transactions_removed", removed,
	)
	return nil
}

func (l *Ledger) getAccount(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	acct, err := l.accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}
