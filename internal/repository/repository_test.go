package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
	"github.com/josh-kwaku/atm-simulator/internal/repository"
	"github.com/josh-kwaku/atm-simulator/internal/testutil"
)

func backends(t *testing.T) map[string]func(*testing.T) *repository.DB {
	t.Helper()
	return map[string]func(*testing.T) *repository.DB{
		"sqlite":   testutil.SetupTestDB,
		"postgres": testutil.SetupPostgresDB,
	}
}

func TestAccountRepository(t *testing.T) {
	for name, setup := range backends(t) {
		t.Run(name, func(t *testing.T) {
			db := setup(t)
			repo := repository.NewAccountRepository(db)
			ctx := context.Background()

			exists, err := repo.Exists(ctx, 1001)
			require.NoError(t, err)
			assert.False(t, exists)

			_, err = repo.GetByNumber(ctx, 1001)
			require.ErrorIs(t, err, domain.ErrNotFound)

			created := time.Now().UTC().Truncate(time.Second)
			tx, err := db.BeginTx(ctx, nil)
			require.NoError(t, err)
			require.NoError(t, repo.Create(ctx, tx, &domain.Account{
				AccountNumber: 1001, PIN: "4321", Balance: 500, CreatedAt: created,
			}))
			require.NoError(t, tx.Commit())

			exists, err = repo.Exists(ctx, 1001)
			require.NoError(t, err)
			assert.True(t, exists)

			a, err := repo.GetByNumber(ctx, 1001)
			require.NoError(t, err)
			assert.Equal(t, int64(1001), a.AccountNumber)
			assert.Equal(t, "4321", a.PIN)
			assert.Equal(t, int64(500), a.Balance)
			assert.True(t, a.CreatedAt.Equal(created), "created_at: got %s, want %s", a.CreatedAt, created)

			tx, err = db.BeginTx(ctx, nil)
			require.NoError(t, err)
			locked, err := repo.GetForUpdate(ctx, tx, 1001)
			require.NoError(t, err)
			require.NoError(t, repo.UpdateBalance(ctx, tx, locked.AccountNumber, 750))
			require.NoError(t, repo.UpdatePIN(ctx, tx, locked.AccountNumber, "1111"))
			require.ErrorIs(t, repo.UpdateBalance(ctx, tx, 9999, 1), domain.ErrNotFound)
			require.NoError(t, tx.Commit())

			assert.Equal(t, int64(750), testutil.GetAccountBalance(t, db, 1001))

			tx, err = db.BeginTx(ctx, nil)
			require.NoError(t, err)
			require.NoError(t, repo.Delete(ctx, tx, 1001))
			require.ErrorIs(t, repo.Delete(ctx, tx, 1001), domain.ErrNotFound)
			require.NoError(t, tx.Commit())

			exists, err = repo.Exists(ctx, 1001)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestAccountRepository_RejectsNegativeBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAccountRepository(db)
	ctx := context.Background()
	testutil.SeedAccount(t, db, 1001, "4321", 100)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.UpdateBalance(ctx, tx, 1001, -1)
	require.Error(t, err)
}

func TestTransactionRepository(t *testing.T) {
	for name, setup := range backends(t) {
		t.Run(name, func(t *testing.T) {
			db := setup(t)
			repo := repository.NewTransactionRepository(db)
			ctx := context.Background()
			testutil.SeedAccount(t, db, 1001, "4321", 0)
			testutil.SeedAccount(t, db, 2002, "1234", 0)

			at := time.Now().UTC().Truncate(time.Second)
			tx, err := db.BeginTx(ctx, nil)
			require.NoError(t, err)

			var ids []int64
			for i, amount := range []int64{100, 200, 300, 400, 500, 600, 700} {
				typ := domain.TransactionTypeDeposit
				if i%2 == 1 {
					typ = domain.TransactionTypeWithdrawal
				}
				entry := &domain.Transaction{AccountNumber: 1001, Type: typ, Amount: amount, CreatedAt: at}
				require.NoError(t, repo.Create(ctx, tx, entry))
				ids = append(ids, entry.ID)
			}
			require.NoError(t, repo.Create(ctx, tx, &domain.Transaction{
				AccountNumber: 2002, Type: domain.TransactionTypeDeposit, Amount: 50, CreatedAt: at,
			}))
			require.NoError(t, tx.Commit())

			for i := 1; i < len(ids); i++ {
				assert.Greater(t, ids[i], ids[i-1])
			}

			recent, err := repo.ListRecent(ctx, 1001, 5)
			require.NoError(t, err)
			require.Len(t, recent, 5)
			assert.Equal(t, int64(700), recent[0].Amount)
			assert.Equal(t, domain.TransactionTypeDeposit, recent[0].Type)
			assert.Equal(t, int64(300), recent[4].Amount)
			for i := 1; i < len(recent); i++ {
				assert.Greater(t, recent[i-1].ID, recent[i].ID)
			}

			none, err := repo.ListRecent(ctx, 3003, 5)
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)

			tx, err = db.BeginTx(ctx, nil)
			require.NoError(t, err)
			removed, err := repo.DeleteByAccount(ctx, tx, 1001)
			require.NoError(t, err)
			require.NoError(t, tx.Commit())

			assert.Equal(t, int64(7), removed)
			assert.Equal(t, 0, testutil.CountTransactions(t, db, 1001))
			assert.Equal(t, 1, testutil.CountTransactions(t, db, 2002))
		})
	}
}

func TestTransactionRepository_RejectsOrphans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.Create(ctx, tx, &domain.Transaction{
		AccountNumber: 4040, Type: domain.TransactionTypeDeposit, Amount: 1, CreatedAt: time.Now().UTC(),
	})
	require.Error(t, err)
}

func TestForeignKeyCascade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	testutil.SeedAccount(t, db, 1001, "4321", 0)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repository.NewTransactionRepository(db).Create(ctx, tx, &domain.Transaction{
		AccountNumber: 1001, Type: domain.TransactionTypeDeposit, Amount: 10, CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, repository.NewAccountRepository(db).Delete(ctx, tx, 1001))
	require.NoError(t, tx.Commit())

	assert.Equal(t, 0, testutil.CountAllTransactions(t, db))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	require.NoError(t, repository.Migrate(context.Background(), db.Conn(), db.Dialect()))
}

func TestOpenUnsupportedDialect(t *testing.T) {
	_, err := repository.Open(context.Background(), repository.Dialect("mysql"), "x", repository.PoolConfig{})
	require.Error(t, err)
}
