package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_banking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_banking_app/internal/core/ports/services"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.EntryReader
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountReader, entryRepo portsrepo.EntryReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccount retrieves the user's account of the given kind.
func (s *accountService) GetAccount(ctx context.Context, userID string, kindToken string) (*domain.Account, error) {
	kind, err := domain.ParseAccountKind(kindToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, kindToken)
	}

	account, err := s.accountRepo.FindAccountByUserAndKind(ctx, userID, kind)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Every registered user owns both kinds; a miss here means the
			// data upstream is broken, not that the caller asked wrongly.
			s.LogError(ctx, err, "Account missing for registered user",
				slog.String("user_id", userID),
				slog.String("kind", string(kind)))
		} else {
			s.LogError(ctx, err, "Failed to find account",
				slog.String("user_id", userID),
				slog.String("kind", string(kind)))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves all accounts owned by the user.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// ListAccountEntries retrieves the ledger history of the user's account of
// the given kind, newest first.
func (s *accountService) ListAccountEntries(ctx context.Context, userID string, kindToken string, limit int) ([]domain.LedgerEntry, error) {
	account, err := s.GetAccount(ctx, userID, kindToken)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListEntriesByAccountID(ctx, account.AccountID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to list entries for account %s: %w", account.AccountID, err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}
