package services

import (
	"context"

	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade is the transaction engine: it validates each money
// movement against the current balance, applies it atomically and appends
// exactly one ledger entry describing it.
//
// Every operation takes the authenticated user's ID, the account kind token
// from the request, and a positive amount; each either commits fully or
// leaves all state unchanged.
type TransactionSvcFacade interface {
	// Deposit increases the balance of the user's account of the given kind.
	Deposit(ctx context.Context, userID, kindToken string, amount decimal.Decimal) (*domain.MovementResult, error)

	// Withdraw decreases the balance, failing with ErrInsufficientFunds if the
	// amount exceeds it.
	Withdraw(ctx context.Context, userID, kindToken string, amount decimal.Decimal) (*domain.MovementResult, error)

	// Purchase is a withdrawal carrying seller and item metadata.
	Purchase(ctx context.Context, userID, kindToken string, amount decimal.Decimal, seller, item string) (*domain.MovementResult, error)

	// Transfer moves the amount from the account of fromKind to the user's
	// other account. Both balance changes and the single transfer entry
	// succeed or fail together.
	Transfer(ctx context.Context, userID, fromKindToken string, amount decimal.Decimal) (*domain.MovementResult, error)
}
