package repositories

import (
	"context"

	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerCommitter is the single commit primitive of the ledger store.
type LedgerCommitter interface {
	// CommitMovement durably applies the balance deltas and appends the ledger
	// entry as one atomic unit: either every balance change and the entry
	// become visible together, or nothing does. It returns the post-commit
	// balance of every account in deltas.
	//
	// Fails with ErrInsufficientFunds if any delta would take a balance below
	// zero, ErrNotFound if an account is missing, and ErrStoreUnavailable if
	// the commit itself could not complete; in every failure case no state
	// has changed and the caller may retry.
	CommitMovement(ctx context.Context, deltas map[string]decimal.Decimal, entry domain.LedgerEntry) (map[string]decimal.Decimal, error)
}

// EntryReader defines read operations over the ledger history.
type EntryReader interface {
	// ListEntriesByAccountID retrieves the ledger entries referencing the
	// account (as sole account, sender or receiver), newest first.
	ListEntriesByAccountID(ctx context.Context, accountID string, limit int) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines the ledger store interfaces
type LedgerRepositoryFacade interface {
	LedgerCommitter
	EntryReader
}
