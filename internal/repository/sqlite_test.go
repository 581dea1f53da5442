package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "atm.db", want: "atm.db?_foreign_keys=on&_busy_timeout=5000"},
		{in: "file:atm.db?mode=rwc", want: "file:atm.db?mode=rwc&_foreign_keys=on&_busy_timeout=5000"},
		{in: "atm.db?_foreign_keys=on", want: "atm.db?_foreign_keys=on&_busy_timeout=5000"},
		{in: "atm.db?_foreign_keys=on&_busy_timeout=10", want: "atm.db?_foreign_keys=on&_busy_timeout=10"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, sqliteDSN(tc.in))
		})
	}
}

func TestDialectLockSuffix(t *testing.T) {
	assert.Equal(t, " FOR UPDATE", DialectPostgres.lockSuffix())
	assert.Equal(t, "", DialectSQLite.lockSuffix())
}
