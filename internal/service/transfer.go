package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
	"github.com/josh-kwaku/atm-simulator/internal/logging"
)

// Transfer moves amount from sender to receiver as one unit: a Withdrawal
// row on the sender, a Deposit row on the receiver and both balance updates
// commit together or not at all. It returns the sender's new balance.
func (l *Ledger) Transfer(ctx context.Context, senderNumber, receiverNumber, amount int64) (int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("Transfer: begin tx: %w", err)
	}
	defer tx.Rollback()

	locked, err := lockAccountsInOrder(ctx, tx, l.accounts, senderNumber, receiverNumber)
	if err != nil {
		return 0, fmt.Errorf("Transfer: %w", err)
	}

	receiver, ok := locked[receiverNumber]
	if !ok {
		return 0, fmt.Errorf("Transfer: receiver %d: %w", receiverNumber, domain.ErrRecipientNotFound)
	}
	sender, ok := locked[senderNumber]
	if !ok {
		return 0, fmt.Errorf("Transfer: sender %d: %w", senderNumber, domain.ErrAccountNotFound)
	}
	if senderNumber == receiverNumber {
		return 0, fmt.Errorf("Transfer: %w", domain.ErrSelfTransfer)
	}

	at := now()
	senderBalance, err := l.debit(ctx, tx, sender, amount, at)
	if err != nil {
		return 0, fmt.Errorf("Transfer: sender: %w", err)
	}
	receiverBalance, err := l.credit(ctx, tx, receiver, amount, at)
	if err != nil {
		return 0, fmt.Errorf("Transfer: receiver: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("Transfer: commit: %w", err)
	}

	logging.FromContext(ctx).Info("transfer completed",
		"sender_account", senderNumber,
		"receiver_account", receiverNumber,
		"amount", amount,
		"sender_balance", senderBalance,
		"receiver_balance", receiverBalance,
	)
	return senderBalance, nil
}

// lockAccountsInOrder reads each account in ascending number order so two
// transfers over the same pair always lock in the same sequence. Missing
// accounts are left out of the result.
func lockAccountsInOrder(ctx context.Context, tx *sql.Tx, accounts accountRepository, numbers ...int64) (map[int64]*domain.Account, error) {
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	result := make(map[int64]*domain.Account, len(sorted))
	for _, n := range sorted {
		acct, err := accounts.GetForUpdate(ctx, tx, n)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("lockAccountsInOrder: %w", err)
		}
		result[n] = acct
	}
	return result, nil
}
