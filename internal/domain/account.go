package domain

import "time"

// Account is a ledger account. PIN holds the encoded credential produced by
// the configured auth.PINHasher and is never rendered.
type Account struct {
	AccountNumber int64
	PIN           string
	Balance       int64
	CreatedAt     time.Time
}

// Details is the view of an account that is safe to show to its owner.
type Details struct {
	AccountNumber int64
	Balance       int64
	CreatedAt     time.Time
}

func (a *Account) Details() Details {
	return Details{
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
	}
}
