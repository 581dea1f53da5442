package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   []error
		not  []error
	}{
		{
			name: "row",
			err:  fmt.Errorf("GetByNumber: %w", ErrNotFound),
			is:   []error{ErrNotFound},
			not:  []error{ErrAccountNotFound, ErrRecipientNotFound},
		},
		{
			name: "account",
			err:  fmt.Errorf("Deposit: %w", ErrAccountNotFound),
			is:   []error{ErrNotFound, ErrAccountNotFound},
			not:  []error{ErrRecipientNotFound},
		},
		{
			name: "recipient",
			err:  fmt.Errorf("Transfer: receiver 9999: %w", ErrRecipientNotFound),
			is:   []error{ErrNotFound, ErrAccountNotFound, ErrRecipientNotFound},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, target := range tc.is {
				assert.True(t, errors.Is(tc.err, target), "want Is %v", target)
			}
			for _, target := range tc.not {
				assert.False(t, errors.Is(tc.err, target), "want not Is %v", target)
			}
		})
	}
}
