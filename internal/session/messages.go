package session

import (
	"errors"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
)

const msgUnexpected = "Something went wrong. Please try again."

var (
	errIncorrectOldPIN = errors.New("incorrect old PIN")
	errCloseCancelled  = errors.New("account closure cancelled")
)

// userMessages maps ledger and input errors to the text shown at the
// terminal. Order matters: the first matching entry wins.
var userMessages = []struct {
	err error
	msg string
}{
	{errIncorrectOldPIN, "Incorrect old PIN."},
	{errCloseCancelled, "Account was not closed."},
	{domain.ErrMalformedInput, "Invalid input."},
	{domain.ErrNotAuthenticated, "Please log in first."},
	{domain.ErrAccountExists, "Account already exists. Choose a different account number."},
	{domain.ErrRecipientNotFound, "Transfer failed: Receiver account does not exist."},
	{domain.ErrAccountNotFound, "Account not found."},
	{domain.ErrNotFound, "Account not found."},
	{domain.ErrInvalidAmount, "Amount must be greater than 0."},
	{domain.ErrInsufficientFunds, "Insufficient funds."},
	{domain.ErrSelfTransfer, "Cannot transfer to the same account."},
	{domain.ErrAuthFailed, "Invalid account number or PIN."},
}

// messageFor returns the user-facing text for err and whether err was one
// of the known kinds.
func messageFor(err error) (string, bool) {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg, true
		}
	}
	return msgUnexpected, false
}
