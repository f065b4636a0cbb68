package domain

import "time"

// DateLayout is the wire and storage layout of calendar dates.
const DateLayout = "2006-01-02"

// JournalEntry is an append-only, balanced set of lines posted at once.
type JournalEntry struct {
	EntryID         int64         `json:"entryID"`
	Date            time.Time     `json:"date"`      // Calendar date (UTC midnight)
	Narration       string        `json:"narration"` // Free text
	PostedAt        time.Time     `json:"postedAt"`  // Server assigned, immutable
	ReversesEntryID *int64        `json:"reversesEntryID,omitempty"`
	Lines           []JournalLine `json:"lines"`
}

// TotalDebits sums the debit side of the entry.
func (e JournalEntry) TotalDebits() int64 {
	var total int64
	for _, l := range e.Lines {
		total += l.Debit
	}
	return total
}

// TotalCredits sums the credit side of the entry.
func (e JournalEntry) TotalCredits() int64 {
	var total int64
	for _, l := range e.Lines {
		total += l.Credit
	}
	return total
}

// JournalLine is a single debit or credit against one account.
// Exactly one of Debit and Credit is positive; the other is zero.
type JournalLine struct {
	LineID      int64  `json:"lineID"`
	EntryID     int64  `json:"entryID"`
	AccountID   int64  `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Debit       int64  `json:"debit"`  // Minor currency units
	Credit      int64  `json:"credit"` // Minor currency units
	LineIndex   int    `json:"lineIndex"`
}

// IsDebit reports whether the line sits on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit > 0
}

// NormalizeDate truncates t to its calendar date in UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
