package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags a ledger entry with the money movement it records.
type EntryType string

const (
	Deposit    EntryType = "DEPOSIT"
	Withdrawal EntryType = "WITHDRAWAL"
	Purchase   EntryType = "PURCHASE"
	Transfer   EntryType = "TRANSFER"
)

// LedgerEntry is an immutable record of one completed money movement.
// Once written it is never mutated or deleted.
//
// AccountID is the sole account for deposits, withdrawals and purchases, and
// the sender for transfers. ReceiverAccountID is set only for transfers.
// Seller and Item are set only for purchases.
type LedgerEntry struct {
	TransactionID     string          `json:"transactionID"` // Primary Key (UUID)
	EntryType         EntryType       `json:"entryType"`
	Amount            decimal.Decimal `json:"amount"` // Always positive
	UserID            string          `json:"userID"`
	AccountID         string          `json:"accountID"`
	ReceiverAccountID string          `json:"receiverAccountID,omitempty"`
	Seller            string          `json:"seller,omitempty"`
	Item              string          `json:"item,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// EffectOn returns the signed balance effect of this entry on the given
// account: positive for money in, negative for money out, zero if the entry
// does not reference the account.
func (e LedgerEntry) EffectOn(accountID string) decimal.Decimal {
	switch e.EntryType {
	case Deposit:
		if e.AccountID == accountID {
			return e.Amount
		}
	case Withdrawal, Purchase:
		if e.AccountID == accountID {
			return e.Amount.Neg()
		}
	case Transfer:
		if e.AccountID == accountID {
			return e.Amount.Neg()
		}
		if e.ReceiverAccountID == accountID {
			return e.Amount
		}
	}
	return decimal.Zero
}

// MovementResult is what the transaction engine hands back after a committed
// movement: the appended entry plus the post-commit balance of every account
// the movement touched, keyed by account ID.
type MovementResult struct {
	Entry    LedgerEntry                `json:"entry"`
	Balances map[string]decimal.Decimal `json:"balances"`
}
