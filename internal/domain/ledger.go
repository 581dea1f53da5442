package domain

import "time"

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal:
		return true
	}
	return false
}

// Transaction is an immutable ledger row. ID is the insertion sequence and is
// the authoritative ordering; CreatedAt only has second precision.
type Transaction struct {
	ID            int64
	AccountNumber int64
	Type          TransactionType
	Amount        int64
	CreatedAt     time.Time
}

// Interest is the outcome of an interest accrual.
type Interest struct {
	Amount     int64
	NewBalance int64
}
