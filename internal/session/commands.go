package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/josh-kwaku/atm-simulator/internal/auth"
	"github.com/josh-kwaku/atm-simulator/internal/domain"
	"github.com/josh-kwaku/atm-simulator/internal/logging"
)

const timestampLayout = "2006-01-02 15:04:05"

type accountCommand struct {
	name string
	run  func(ctx context.Context) error
	// logout ends the account menu once the command succeeds.
	logout bool
}

func (s *Session) accountCommands() map[int]accountCommand {
	return map[int]accountCommand{
		1: {name: "check_balance", run: s.checkBalance},
		2: {name: "deposit", run: s.deposit},
		3: {name: "withdraw", run: s.withdraw},
		4: {name: "transfer", run: s.transfer},
		5: {name: "mini_statement", run: s.miniStatement},
		6: {name: "close_account", run: s.closeAccount, logout: true},
		7: {name: "change_pin", run: s.changePIN},
		8: {name: "view_details", run: s.viewDetails},
		9: {name: "add_interest", run: s.addInterest},
	}
}

func (s *Session) login(ctx context.Context) error {
	var accountNumber int64
	ok, err := s.do(ctx, "login", func(ctx context.Context) error {
		n, err := s.readAccountNumber("Enter your account number: ")
		if err != nil {
			return err
		}
		pin, err := s.readPIN("Enter your PIN: ")
		if err != nil {
			return err
		}
		if err := s.ledger.Authenticate(ctx, n, pin); err != nil {
			return err
		}
		accountNumber = n
		return nil
	})
	if err != nil || !ok {
		return err
	}

	ctx = auth.ContextWithAccount(ctx, accountNumber)
	ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With("account_number", accountNumber))
	return s.accountMenu(ctx)
}

func (s *Session) accountMenu(ctx context.Context) error {
	commands := s.accountCommands()
	for {
		s.term.Println()
		s.term.Println("ATM Menu:")
		s.term.Println("1. Check Balance")
		s.term.Println("2. Deposit Money")
		s.term.Println("3. Withdraw Money")
		s.term.Println("4. Transfer Money")
		s.term.Println("5. Mini Statement")
		s.term.Println("6. Close Account")
		s.term.Println("7. Change PIN")
		s.term.Println("8. View Account Details")
		s.term.Println("9. Add Interest")
		s.term.Println("10. Logout")

		choice, err := s.readChoice("Enter your choice (1-10): ")
		if errors.Is(err, domain.ErrMalformedInput) {
			s.term.Println("Invalid input.")
			continue
		}
		if err != nil {
			return err
		}

		if choice == 10 {
			logging.FromContext(ctx).Info("logged out")
			s.term.Println("Logged out successfully.")
			return nil
		}

		cmd, found := commands[choice]
		if !found {
			s.term.Println("Invalid choice. Try again.")
			continue
		}

		ok, err := s.do(ctx, cmd.name, cmd.run)
		if err != nil {
			return err
		}
		if ok && cmd.logout {
			return nil
		}
	}
}

func (s *Session) createAccount(ctx context.Context) error {
	n, err := s.readAccountNumber("Enter a new account number: ")
	if err != nil {
		return err
	}

	exists, err := s.ledger.AccountExists(ctx, n)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("createAccount: %d: %w", n, domain.ErrAccountExists)
	}

	pin, err := s.readPIN("Enter a PIN: ")
	if err != nil {
		return err
	}
	if _, err := s.ledger.CreateAccount(ctx, n, pin, 0); err != nil {
		return err
	}
	s.term.Println("Account created successfully!")
	return nil
}

func (s *Session) checkBalance(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	balance, err := s.ledger.GetBalance(ctx, n)
	if err != nil {
		return err
	}
	s.term.Printf("Current Balance: %s\n", domain.FormatAmount(balance))
	return nil
}

func (s *Session) deposit(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	amount, err := s.readAmount("Enter deposit amount: $")
	if err != nil {
		return err
	}
	balance, err := s.ledger.Deposit(ctx, n, amount)
	if err != nil {
		return err
	}
	s.term.Printf("New Balance: %s\n", domain.FormatAmount(balance))
	return nil
}

func (s *Session) withdraw(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	amount, err := s.readAmount("Enter withdrawal amount: $")
	if err != nil {
		return err
	}
	balance, err := s.ledger.Withdraw(ctx, n, amount)
	if err != nil {
		return err
	}
	s.term.Printf("New Balance: %s\n", domain.FormatAmount(balance))
	return nil
}

func (s *Session) transfer(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	receiver, err := s.readAccountNumber("Enter receiver account number: ")
	if err != nil {
		return err
	}
	amount, err := s.readAmount("Enter transfer amount: $")
	if err != nil {
		return err
	}
	if _, err := s.ledger.Transfer(ctx, n, receiver, amount); err != nil {
		return err
	}
	s.term.Printf("Transferred %s from %d to %d.\n", domain.FormatAmount(amount), n, receiver)
	return nil
}

func (s *Session) miniStatement(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	txns, err := s.ledger.RecentTransactions(ctx, n, 0)
	if err != nil {
		return err
	}

	s.term.Println()
	s.term.Println("Last Transactions:")
	if len(txns) == 0 {
		s.term.Println("No transactions found.")
		return nil
	}
	for _, t := range txns {
		s.term.Printf("%s | %s | %s\n", formatTimestamp(t.CreatedAt), t.Type, domain.FormatAmount(t.Amount))
	}
	return nil
}

func (s *Session) closeAccount(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	answer, err := s.term.ReadLine("Are you sure you want to close your account? (yes/no): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		return errCloseCancelled
	}
	if err := s.ledger.CloseAccount(ctx, n); err != nil {
		return err
	}
	s.term.Println("Account closed successfully.")
	return nil
}

func (s *Session) changePIN(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	oldPIN, err := s.readPIN("Enter your old PIN: ")
	if err != nil {
		return err
	}
	newPIN, err := s.readPIN("Enter your new PIN: ")
	if err != nil {
		return err
	}
	if err := s.ledger.ChangePIN(ctx, n, oldPIN, newPIN); err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			return fmt.Errorf("%w: %w", errIncorrectOldPIN, err)
		}
		return err
	}
	s.term.Println("PIN changed successfully!")
	return nil
}

func (s *Session) viewDetails(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	details, err := s.ledger.GetDetails(ctx, n)
	if err != nil {
		return err
	}
	s.term.Println()
	s.term.Println("Account Details")
	s.term.Printf("Account Number: %d\n", details.AccountNumber)
	s.term.Printf("Current Balance: %s\n", domain.FormatAmount(details.Balance))
	s.term.Printf("Opened: %s\n", formatTimestamp(details.CreatedAt))
	return nil
}

func (s *Session) addInterest(ctx context.Context) error {
	n, err := requireAccount(ctx)
	if err != nil {
		return err
	}
	prompt := fmt.Sprintf("Enter interest rate (default %s%%): ", s.rates.DefaultRate().String())
	raw, err := s.term.ReadLine(prompt)
	if err != nil {
		return err
	}
	rate, err := s.rates.ParseRate(raw)
	if err != nil {
		return err
	}
	result, err := s.ledger.AddInterest(ctx, n, rate)
	if err != nil {
		return err
	}
	s.term.Printf("Interest of %s added. New Balance: %s\n",
		domain.FormatAmount(result.Amount), domain.FormatAmount(result.NewBalance))
	return nil
}

// formatTimestamp renders a stored UTC time on the user's clock.
func formatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

func requireAccount(ctx context.Context) (int64, error) {
	n, ok := auth.AccountFromContext(ctx)
	if !ok {
		return 0, domain.ErrNotAuthenticated
	}
	return n, nil
}

func (s *Session) readChoice(prompt string) (int, error) {
	raw, err := s.term.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	choice, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("readChoice: %q: %w", raw, domain.ErrMalformedInput)
	}
	return choice, nil
}

func (s *Session) readAccountNumber(prompt string) (int64, error) {
	raw, err := s.term.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("readAccountNumber: %q: %w", raw, domain.ErrMalformedInput)
	}
	return n, nil
}

func (s *Session) readPIN(prompt string) (int, error) {
	raw, err := s.term.ReadSecret(prompt)
	if err != nil {
		return 0, err
	}
	pin, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("readPIN: %w", domain.ErrMalformedInput)
	}
	return pin, nil
}

func (s *Session) readAmount(prompt string) (int64, error) {
	raw, err := s.term.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	return domain.ParseAmount(raw)
}
