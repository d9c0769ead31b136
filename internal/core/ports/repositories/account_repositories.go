package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByUserAndKind retrieves the single account of the given kind
	// owned by the user.
	FindAccountByUserAndKind(ctx context.Context, userID string, kind domain.AccountKind) (*domain.Account, error)

	// FindAccountsByUser retrieves all accounts owned by the user.
	FindAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountTransactionSupport defines the balance mutation operations used by
// the ledger store inside a database transaction.
type AccountTransactionSupport interface {
	// LockAccountsForUpdate selects the accounts and locks their rows for
	// update within the transaction. Account IDs are locked in sorted order so
	// concurrent multi-account commits cannot deadlock.
	LockAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx atomically adjusts each account balance by its
	// delta, rejecting the whole set with ErrInsufficientFunds if any
	// resulting balance would be negative. Returns the new balances.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, now time.Time) (map[string]decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountTransactionSupport
}
