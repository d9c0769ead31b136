package domain

import (
	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountKind defines the variant of a bank account. Each user owns exactly
// one account of each kind.
type AccountKind string

const (
	Checking AccountKind = "checking"
	Savings  AccountKind = "savings"
)

// ParseAccountKind validates an account kind token from the request layer.
func ParseAccountKind(token string) (AccountKind, error) {
	switch AccountKind(token) {
	case Checking:
		return Checking, nil
	case Savings:
		return Savings, nil
	default:
		return "", apperrors.ErrInvalidAccountKind
	}
}

// Other returns the opposite account kind, the only valid transfer
// destination in scope.
func (k AccountKind) Other() AccountKind {
	if k == Checking {
		return Savings
	}
	return Checking
}

// Account represents a single bank account owned by a user.
// Invariant: Balance is never negative, and always equals the signed sum of
// the ledger entries referencing this account.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	UserID    string          `json:"userID"`    // FK -> users.user_id (Not Null)
	Kind      AccountKind     `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
	AuditFields
}
