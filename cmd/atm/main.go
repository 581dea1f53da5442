package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/josh-kwaku/atm-simulator/internal/auth"
	"github.com/josh-kwaku/atm-simulator/internal/config"
	"github.com/josh-kwaku/atm-simulator/internal/interest"
	"github.com/josh-kwaku/atm-simulator/internal/logging"
	"github.com/josh-kwaku/atm-simulator/internal/repository"
	"github.com/josh-kwaku/atm-simulator/internal/service"
	"github.com/josh-kwaku/atm-simulator/internal/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("atm simulator stopped", "error", err)
		fmt.Fprintln(os.Stderr, "ATM Simulator failed to start. Check the log for details.")
		os.Exit(1)
	}
}

// run owns every resource it opens so that deferred closes execute before
// main decides the exit code.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out, closeLog, err := logging.OpenOutput(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := logging.Init("atm-simulator", cfg.LogLevel, cfg.AppEnv, out)

	pins, err := auth.NewPINHasher(cfg.PINHasher)
	if err != nil {
		return err
	}

	ctx := logging.WithLogger(context.Background(), logger)

	db, err := repository.Open(ctx, repository.Dialect(cfg.DBDriver), cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()
	logger.Info("store ready", "driver", cfg.DBDriver, "pin_hasher", pins.Name())

	calc := interest.NewCalculator(cfg.DefaultInterestRate)
	ledger := service.NewLedger(
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
		pins,
		calc,
		db,
		cfg,
	)

	term := session.NewTerminal(os.Stdin, os.Stdout)
	return session.New(ledger, calc, term, logger).Run(ctx)
}
