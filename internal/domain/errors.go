package domain

import (
	"errors"
	"fmt"
)

// The not-found errors nest: a missing recipient is a missing account, and
// a missing account is a missing row. errors.Is matches every outer kind.
var (
	ErrNotFound          = errors.New("not found")
	ErrAccountNotFound   = fmt.Errorf("account %w", ErrNotFound)
	ErrRecipientNotFound = fmt.Errorf("recipient %w", ErrAccountNotFound)
)

var (
	ErrAccountExists     = errors.New("account already exists")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to same account")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrMalformedInput    = errors.New("malformed input")
	ErrNotAuthenticated  = errors.New("not authenticated")
)
