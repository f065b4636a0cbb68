package domain

import "time"

// LineTotals is the raw debit and credit aggregate for one account.
type LineTotals struct {
	TotalDebits  int64
	TotalCredits int64
}

// Balance is an account's position, optionally as of a calendar date.
type Balance struct {
	AccountCode  string      `json:"accountCode"`
	AccountName  string      `json:"accountName"`
	AccountType  AccountType `json:"accountType"`
	TotalDebits  int64       `json:"totalDebits"`
	TotalCredits int64       `json:"totalCredits"`
	Balance      int64       `json:"balance"`
	AsOf         *time.Time  `json:"asOf,omitempty"` // Nil means all history
}
