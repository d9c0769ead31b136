package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_banking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_banking_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService is the transaction engine. It is a stateless
// orchestrator: per call it resolves the touched accounts, validates the
// movement against the current balance, and hands the paired (balance
// deltas, ledger entry) effect to the ledger store's single atomic commit.
//
// The funds pre-check here gives a fast failure without opening a store
// transaction; the store re-checks every delta under row locks, so two
// concurrent debits can never both drain the same balance.
type transactionService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerCommitter
}

// NewTransactionService creates a new transaction engine.
func NewTransactionService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerCommitter) portssvc.TransactionSvcFacade {
	return &transactionService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateAmount rejects non-positive amounts. Unparsable and non-finite
// values never reach the engine: decimal binding fails on them upstream.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	return nil
}

// resolveAccount maps a kind token to the user's account of that kind.
// A missing account for a valid kind is a data-integrity problem (every
// registered user owns both kinds), so it is logged loudly before being
// returned as an ordinary failure.
func (s *transactionService) resolveAccount(ctx context.Context, userID, kindToken string) (*domain.Account, error) {
	kind, err := domain.ParseAccountKind(kindToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, kindToken)
	}

	account, err := s.accountRepo.FindAccountByUserAndKind(ctx, userID, kind)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Account missing for registered user",
				slog.String("user_id", userID),
				slog.String("kind", string(kind)))
		}
		return nil, err
	}
	return account, nil
}

// commit hands the movement to the ledger store and assembles the result.
func (s *transactionService) commit(ctx context.Context, deltas map[string]decimal.Decimal, entry domain.LedgerEntry) (*domain.MovementResult, error) {
	balances, err := s.ledgerRepo.CommitMovement(ctx, deltas, entry)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to commit money movement",
				slog.String("transaction_id", entry.TransactionID),
				slog.String("entry_type", string(entry.EntryType)))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Money movement committed",
		slog.String("transaction_id", entry.TransactionID),
		slog.String("entry_type", string(entry.EntryType)),
		slog.String("amount", entry.Amount.String()))
	return &domain.MovementResult{Entry: entry, Balances: balances}, nil
}

// Deposit increases the balance of the user's account of the given kind.
// Deposits have no upper bound and cannot fail on funds.
func (s *transactionService) Deposit(ctx context.Context, userID, kindToken string, amount decimal.Decimal) (*domain.MovementResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	account, err := s.resolveAccount(ctx, userID, kindToken)
	if err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		TransactionID: uuid.NewString(),
		EntryType:     domain.Deposit,
		Amount:        amount,
		UserID:        userID,
		AccountID:     account.AccountID,
		CreatedAt:     time.Now().UTC(),
	}
	return s.commit(ctx, map[string]decimal.Decimal{account.AccountID: amount}, entry)
}

// Withdraw decreases the balance of the user's account of the given kind.
// Withdrawing the exact balance is allowed; one cent more is not.
func (s *transactionService) Withdraw(ctx context.Context, userID, kindToken string, amount decimal.Decimal) (*domain.MovementResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	account, err := s.resolveAccount(ctx, userID, kindToken)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(account.Balance) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, account.Balance.String(), amount.String())
	}

	entry := domain.LedgerEntry{
		TransactionID: uuid.NewString(),
		EntryType:     domain.Withdrawal,
		Amount:        amount,
		UserID:        userID,
		AccountID:     account.AccountID,
		CreatedAt:     time.Now().UTC(),
	}
	return s.commit(ctx, map[string]decimal.Decimal{account.AccountID: amount.Neg()}, entry)
}

// Purchase is a withdrawal that records seller and item metadata on the
// ledger entry.
func (s *transactionService) Purchase(ctx context.Context, userID, kindToken string, amount decimal.Decimal, seller, item string) (*domain.MovementResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	account, err := s.resolveAccount(ctx, userID, kindToken)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(account.Balance) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, account.Balance.String(), amount.String())
	}

	entry := domain.LedgerEntry{
		TransactionID: uuid.NewString(),
		EntryType:     domain.Purchase,
		Amount:        amount,
		UserID:        userID,
		AccountID:     account.AccountID,
		Seller:        seller,
		Item:          item,
		CreatedAt:     time.Now().UTC(),
	}
	return s.commit(ctx, map[string]decimal.Decimal{account.AccountID: amount.Neg()}, entry)
}

// Transfer moves the amount between the user's two accounts: out of the
// account of fromKind, into the other one. The debit, the credit and the
// single transfer entry become visible together or not at all.
func (s *transactionService) Transfer(ctx context.Context, userID, fromKindToken string, amount decimal.Decimal) (*domain.MovementResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	from, err := s.resolveAccount(ctx, userID, fromKindToken)
	if err != nil {
		return nil, err
	}
	to, err := s.resolveAccount(ctx, userID, string(from.Kind.Other()))
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(from.Balance) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, from.Balance.String(), amount.String())
	}

	entry := domain.LedgerEntry{
		TransactionID:     uuid.NewString(),
		EntryType:         domain.Transfer,
		Amount:            amount,
		UserID:            userID,
		AccountID:         from.AccountID,
		ReceiverAccountID: to.AccountID,
		CreatedAt:         time.Now().UTC(),
	}
	deltas := map[string]decimal.Decimal{
		from.AccountID: amount.Neg(),
		to.AccountID:   amount,
	}
	return s.commit(ctx, deltas, entry)
}
