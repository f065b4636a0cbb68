package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateAccountRequest defines the data needed to register a new account.
// The account type is checked by the registry, not by binding, so that an
// unknown type surfaces as InvalidType.
type CreateAccountRequest struct {
	Code string             `json:"code" binding:"required,max=20,accountcode"`
	Name string             `json:"name" binding:"required,max=255"`
	Type domain.AccountType `json:"type" binding:"required"`
}

// RenameAccountRequest defines the only update allowed on an account.
type RenameAccountRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Type string `form:"type"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	CreatedAt time.Time          `json:"created_at"`
}

// ListAccountsResponse wraps a list of accounts with the applied filter.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Count    int               `json:"count"`
	Filter   string            `json:"filter"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Code:      acc.Code,
		Name:      acc.Name,
		Type:      acc.Type,
		CreatedAt: acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
