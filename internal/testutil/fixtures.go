package testutil

import (
	"testing"
	"time"

	"github.com/josh-kwaku/atm-simulator/internal/repository"
)

// SeedAccount inserts an account with a plain-encoded PIN directly,
// bypassing the ledger.
func SeedAccount(t *testing.T, db *repository.DB, accountNumber int64, pin string, balance int64) {
	t.Helper()

	_, err := db.Conn().Exec(
		`INSERT INTO accounts (account_number, pin, balance, created_at) VALUES ($1, $2, $3, $4)`,
		accountNumber, pin, balance, time.Now().UTC().Truncate(time.Second),
	)
	if err != nil {
		t.Fatalf("seed account %d: %v", accountNumber, err)
	}
}

func GetAccountBalance(t *testing.T, db *repository.DB, accountNumber int64) int64 {
	t.Helper()

	var balance int64
	err := db.Conn().QueryRow(`SELECT balance FROM accounts WHERE account_number = $1`, accountNumber).Scan(&balance)
	if err != nil {
		t.Fatalf("get account balance %d: %v", accountNumber, err)
	}
	return balance
}

func CountTransactions(t *testing.T, db *repository.DB, accountNumber int64) int {
	t.Helper()

	var count int
	err := db.Conn().QueryRow(`SELECT COUNT(*) FROM transactions WHERE account_number = $1`, accountNumber).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for %d: %v", accountNumber, err)
	}
	return count
}

func CountAllTransactions(t *testing.T, db *repository.DB) int {
	t.Helper()

	var count int
	if err := db.Conn().QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return count
}
