package services

import (
	"context"

	"github.com/SscSPs/personal_banking_app/internal/core/domain"
)

// AccountSvcFacade defines read operations over a user's accounts.
type AccountSvcFacade interface {
	// GetAccount retrieves the user's account of the given kind.
	GetAccount(ctx context.Context, userID string, kindToken string) (*domain.Account, error)

	// ListAccounts retrieves all accounts owned by the user.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// ListAccountEntries retrieves the ledger history of the user's account of
	// the given kind, newest first.
	ListAccountEntries(ctx context.Context, userID string, kindToken string, limit int) ([]domain.LedgerEntry, error)
}
