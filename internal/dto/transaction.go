package dto

import (
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoveMoneyRequest is the body of a deposit, withdrawal or transfer request.
// Amount binds from a decimal JSON number or string; unparsable values fail
// at binding, non-positive ones are rejected by the engine.
type MoveMoneyRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required" example:"25.00"`
}

// PurchaseRequest is the body of a purchase request.
type PurchaseRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required" example:"25.00"`
	Seller string          `json:"seller" binding:"required,max=32"`
	Item   string          `json:"item" binding:"required,max=32"`
}

// EntryResponse is the outward representation of one ledger entry.
type EntryResponse struct {
	TransactionID     string `json:"transactionID"`
	EntryType         string `json:"entryType"`
	Amount            string `json:"amount"`
	AccountID         string `json:"accountID"`
	ReceiverAccountID string `json:"receiverAccountID,omitempty"`
	Seller            string `json:"seller,omitempty"`
	Item              string `json:"item,omitempty"`
	CreatedAt         string `json:"createdAt"`
}

// MovementResponse reports a committed money movement: the appended ledger
// entry and the updated balance of each touched account.
type MovementResponse struct {
	Entry    EntryResponse     `json:"entry"`
	Balances map[string]string `json:"balances"`
}

// ListEntriesResponse wraps the ledger history of one account.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ToEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToEntryResponse(e domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		TransactionID:     e.TransactionID,
		EntryType:         string(e.EntryType),
		Amount:            e.Amount.String(),
		AccountID:         e.AccountID,
		ReceiverAccountID: e.ReceiverAccountID,
		Seller:            e.Seller,
		Item:              e.Item,
		CreatedAt:         e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToMovementResponse converts a domain.MovementResult to its response DTO.
func ToMovementResponse(res *domain.MovementResult) MovementResponse {
	balances := make(map[string]string, len(res.Balances))
	for accountID, balance := range res.Balances {
		balances[accountID] = balance.String()
	}
	return MovementResponse{
		Entry:    ToEntryResponse(res.Entry),
		Balances: balances,
	}
}

// ToListEntriesResponse converts ledger entries to the list DTO.
func ToListEntriesResponse(entries []domain.LedgerEntry) ListEntriesResponse {
	resp := ListEntriesResponse{Entries: make([]EntryResponse, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = ToEntryResponse(e)
	}
	return resp
}
