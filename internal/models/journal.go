package models

import "time"

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID         int64     `db:"id"`
	EntryDate       time.Time `db:"entry_date"`
	Narration       string    `db:"narration"`
	PostedAt        time.Time `db:"posted_at"`
	ReversesEntryID *int64    `db:"reverses_entry_id"` // Nullable
}

// JournalLine represents a row of the journal_lines table joined with its account.
type JournalLine struct {
	LineID      int64  `db:"id"`
	EntryID     int64  `db:"entry_id"`
	AccountID   int64  `db:"account_id"`
	AccountCode string `db:"code"` // From accounts
	AccountName string `db:"name"` // From accounts
	DebitCents  int64  `db:"debit_cents"`
	CreditCents int64  `db:"credit_cents"`
	LineIndex   int    `db:"line_index"`
}
