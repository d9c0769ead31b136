// Package memory provides an in-memory ledger store with the same commit
// semantics as the Postgres store. It backs tests and local development
// without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_banking_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store holds accounts and ledger entries in memory. A single mutex guards
// the whole store, so every commit is observed atomically, matching the
// database transaction the Postgres store uses.
type Store struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	entries  []domain.LedgerEntry

	failNextCommit error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
	}
}

// Ensure Store implements the reader and ledger store interfaces
var (
	_ portsrepo.AccountReader          = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade = (*Store)(nil)
)

// SeedAccount inserts or replaces an account. Intended for test setup.
func (s *Store) SeedAccount(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = account
}

// FailNextCommit makes the next CommitMovement fail with err before any
// state change, simulating an unavailable store.
func (s *Store) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextCommit = err
}

// FindAccountByID retrieves an account by its ID.
func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

// FindAccountByUserAndKind retrieves the single account of the given kind
// owned by the user.
func (s *Store) FindAccountByUserAndKind(ctx context.Context, userID string, kind domain.AccountKind) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.UserID == userID && acc.Kind == kind {
			found := acc
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// FindAccountsByUser retrieves all accounts owned by the user, checking
// account first.
func (s *Store) FindAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := []domain.Account{}
	for _, acc := range s.accounts {
		if acc.UserID == userID {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Kind < accounts[j].Kind })
	return accounts, nil
}

// CommitMovement validates every delta against the current balances, then
// applies all of them and appends the entry while still holding the lock.
// Nothing is mutated if any delta would overdraw its account.
func (s *Store) CommitMovement(ctx context.Context, deltas map[string]decimal.Decimal, entry domain.LedgerEntry) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNextCommit != nil {
		err := s.failNextCommit
		s.failNextCommit = nil
		return nil, err
	}

	newBalances := make(map[string]decimal.Decimal, len(deltas))
	for accountID, delta := range deltas {
		acc, ok := s.accounts[accountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		newBalance := acc.Balance.Add(delta)
		if newBalance.IsNegative() {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)
		}
		newBalances[accountID] = newBalance
	}

	for accountID, balance := range newBalances {
		acc := s.accounts[accountID]
		acc.Balance = balance
		acc.LastUpdatedAt = entry.CreatedAt
		s.accounts[accountID] = acc
	}
	s.entries = append(s.entries, entry)

	return newBalances, nil
}

// ListEntriesByAccountID retrieves the entries referencing the account,
// newest first.
func (s *Store) ListEntriesByAccountID(ctx context.Context, accountID string, limit int) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	entries := []domain.LedgerEntry{}
	for i := len(s.entries) - 1; i >= 0 && len(entries) < limit; i-- {
		e := s.entries[i]
		if e.AccountID == accountID || e.ReceiverAccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Entries returns a copy of all ledger entries in append order.
func (s *Store) Entries() []domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.LedgerEntry, len(s.entries))
	copy(copied, s.entries)
	return copied
}
