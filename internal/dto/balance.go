package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

// GetBalanceParams defines query parameters for a balance lookup.
type GetBalanceParams struct {
	AsOf string `form:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	AccountCode         string             `json:"account_code"`
	AccountName         string             `json:"account_name"`
	AccountType         domain.AccountType `json:"account_type"`
	Balance             int64              `json:"balance"`
	TotalDebits         int64              `json:"total_debits"`
	TotalCredits        int64              `json:"total_credits"`
	AsOfDate            string             `json:"as_of_date"` // "current" when unrestricted
	BalanceInMajorUnits string             `json:"balance_in_major_units"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse DTO
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	asOf := "current"
	if b.AsOf != nil {
		asOf = b.AsOf.Format(domain.DateLayout)
	}
	return BalanceResponse{
		AccountCode:         b.AccountCode,
		AccountName:         b.AccountName,
		AccountType:         b.AccountType,
		Balance:             b.Balance,
		TotalDebits:         b.TotalDebits,
		TotalCredits:        b.TotalCredits,
		AsOfDate:            asOf,
		BalanceInMajorUnits: utils.FormatMinorUnits(b.Balance),
	}
}
