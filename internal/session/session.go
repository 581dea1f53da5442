package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
	"github.com/josh-kwaku/atm-simulator/internal/logging"
)

type ledger interface {
	AccountExists(ctx context.Context, accountNumber int64) (bool, error)
	CreateAccount(ctx context.Context, accountNumber int64, pin int, initialBalance int64) (*domain.Details, error)
	Authenticate(ctx context.Context, accountNumber int64, pin int) error
	GetBalance(ctx context.Context, accountNumber int64) (int64, error)
	GetDetails(ctx context.Context, accountNumber int64) (*domain.Details, error)
	Deposit(ctx context.Context, accountNumber, amount int64) (int64, error)
	Withdraw(ctx context.Context, accountNumber, amount int64) (int64, error)
	Transfer(ctx context.Context, senderNumber, receiverNumber, amount int64) (int64, error)
	RecentTransactions(ctx context.Context, accountNumber int64, limit int) ([]domain.Transaction, error)
	CloseAccount(ctx context.Context, accountNumber int64) error
	ChangePIN(ctx context.Context, accountNumber int64, oldPIN, newPIN int) error
	AddInterest(ctx context.Context, accountNumber int64, ratePct decimal.Decimal) (*domain.Interest, error)
}

type rateParser interface {
	DefaultRate() decimal.Decimal
	ParseRate(s string) (decimal.Decimal, error)
}

// Session drives the ATM menus for one user at a terminal. The only state
// it keeps is the authenticated account, carried in the context handed to
// account commands.
type Session struct {
	ledger ledger
	rates  rateParser
	term   *Terminal
	logger *slog.Logger
}

func New(l ledger, rates rateParser, t *Terminal, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ledger: l,
		rates:  rates,
		term:   t,
		logger: logger,
	}
}

// Run shows the main menu until the user exits or input ends. It returns an
// error only when the terminal itself fails.
func (s *Session) Run(ctx context.Context) error {
	logger := s.logger.With("session_id", uuid.New().String())
	ctx = logging.WithLogger(ctx, logger)
	logger.Info("session started")

	err := s.mainMenu(ctx)
	if errors.Is(err, io.EOF) {
		logger.Info("session ended", "reason", "end of input")
		return nil
	}
	if err != nil {
		logger.Error("session aborted", "error", err)
		return fmt.Errorf("Run: %w", err)
	}
	logger.Info("session ended", "reason", "exit")
	return nil
}

func (s *Session) mainMenu(ctx context.Context) error {
	for {
		s.term.Println()
		s.term.Println("Welcome to the ATM Simulator!")
		s.term.Println("1. Create New Account")
		s.term.Println("2. Login")
		s.term.Println("3. Exit Program")

		choice, err := s.readChoice("Enter your choice (1-3): ")
		if errors.Is(err, domain.ErrMalformedInput) {
			s.term.Println("Invalid input.")
			continue
		}
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			_, err = s.do(ctx, "create_account", s.createAccount)
		case 2:
			err = s.login(ctx)
		case 3:
			s.term.Println("Exiting ATM Simulator. Goodbye!")
			return nil
		default:
			s.term.Println("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

// do runs one command under recovery, renders any failure and logs the
// outcome. ok reports whether the command succeeded; err is non-nil only
// when the terminal can no longer be read.
func (s *Session) do(ctx context.Context, command string, fn func(ctx context.Context) error) (ok bool, err error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic recovered", "command", command, "error", r, "stack", string(debug.Stack()))
			s.term.Println(msgUnexpected)
			ok, err = false, nil
		}
	}()

	cmdErr := fn(ctx)
	if cmdErr == nil {
		log.Info("command completed", "command", command, "duration_ms", time.Since(start).Milliseconds())
		return true, nil
	}
	if isTerminalErr(cmdErr) {
		return false, cmdErr
	}

	msg, known := messageFor(cmdErr)
	if known {
		log.Info("command rejected", "command", command, "error", cmdErr, "duration_ms", time.Since(start).Milliseconds())
	} else {
		log.Error("command failed", "command", command, "error", cmdErr, "duration_ms", time.Since(start).Milliseconds())
	}
	s.term.Println(msg)
	return false, nil
}
