package models

import "time"

// AccountType is the stored spelling of an account type.
type AccountType string

// Account represents a row of the accounts table.
type Account struct {
	AccountID   int64       `db:"id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"type"`
	CreatedAt   time.Time   `db:"created_at"`
}
