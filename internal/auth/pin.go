package auth

import (
	"crypto/subtle"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

const (
	HasherPlain  = "plain"
	HasherBcrypt = "bcrypt"
)

// PINHasher encodes PINs for storage and checks candidates against the
// stored form. The ledger only ever sees the encoded string.
type PINHasher interface {
	Name() string
	Hash(pin int) (string, error)
	Verify(encoded string, pin int) bool
}

// NewPINHasher returns the hasher registered under name.
func NewPINHasher(name string) (PINHasher, error) {
	switch name {
	case "", HasherPlain:
		return PlainPIN{}, nil
	case HasherBcrypt:
		return BcryptPIN{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("NewPINHasher: unknown hasher %q", name)
	}
}

// PlainPIN stores the PIN as its decimal digits.
type PlainPIN struct{}

func (PlainPIN) Name() string { return HasherPlain }

func (PlainPIN) Hash(pin int) (string, error) {
	return strconv.Itoa(pin), nil
}

func (PlainPIN) Verify(encoded string, pin int) bool {
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(strconv.Itoa(pin))) == 1
}

// BcryptPIN stores a salted bcrypt hash of the PIN digits.
type BcryptPIN struct {
	Cost int
}

func (BcryptPIN) Name() string { return HasherBcrypt }

func (h BcryptPIN) Hash(pin int) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strconv.Itoa(pin)), cost)
	if err != nil {
		return "", fmt.Errorf("BcryptPIN.Hash: %w", err)
	}
	return string(hash), nil
}

func (BcryptPIN) Verify(encoded string, pin int) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(strconv.Itoa(pin))) == nil
}
