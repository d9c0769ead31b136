package dto

import (
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
)

// AccountResponse is the outward representation of an account.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Kind      string `json:"kind"`
	Balance   string `json:"balance"`
}

// ListAccountsResponse wraps the accounts owned by a user.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Kind:      string(a.Kind),
		Balance:   a.Balance.String(),
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}
