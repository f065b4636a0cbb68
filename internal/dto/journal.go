package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

// PostLineRequest is one proposed debit or credit line.
// Amounts are minor currency units; omitted sides count as zero.
type PostLineRequest struct {
	AccountCode string `json:"account_code" binding:"required,max=20"`
	Debit       int64  `json:"debit"`
	Credit      int64  `json:"credit"`
}

// CreateJournalEntryRequest is the wire shape of a posting request.
type CreateJournalEntryRequest struct {
	Date            string            `json:"date" binding:"required,datetime=2006-01-02"`
	Narration       string            `json:"narration" binding:"required,max=1000"`
	Lines           []PostLineRequest `json:"lines" binding:"required,dive"`
	ReversesEntryID *int64            `json:"reverses_entry_id"`
}

// ToPostEntryRequest parses the calendar date and returns the service input.
func (r CreateJournalEntryRequest) ToPostEntryRequest() (PostEntryRequest, error) {
	date, err := time.Parse(domain.DateLayout, r.Date)
	if err != nil {
		return PostEntryRequest{}, err
	}
	return PostEntryRequest{
		Date:            date,
		Narration:       r.Narration,
		Lines:           r.Lines,
		ReversesEntryID: r.ReversesEntryID,
	}, nil
}

// PostEntryRequest is the Posting Engine input.
type PostEntryRequest struct {
	Date            time.Time
	Narration       string
	Lines           []PostLineRequest
	ReversesEntryID *int64
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=1,max=100"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
	NextToken string `form:"next_token"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
	Debit       int64  `json:"debit"`
	Credit      int64  `json:"credit"`
	DebitMajor  string `json:"debit_major"`
	CreditMajor string `json:"credit_major"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	ID              int64                 `json:"id"`
	Date            string                `json:"date"`
	Narration       string                `json:"narration"`
	PostedAt        time.Time             `json:"posted_at"`
	ReversesEntryID *int64                `json:"reverses_entry_id"`
	Lines           []JournalLineResponse `json:"lines"`
}

// PostJournalEntryResponse adds the replay marker to a posted entry.
type PostJournalEntryResponse struct {
	Entry      JournalEntryResponse `json:"entry"`
	Idempotent bool                 `json:"idempotent"`
}

// Pagination describes the page returned by a list call.
type Pagination struct {
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	HasMore   bool    `json:"has_more"`
	NextToken *string `json:"next_token,omitempty"`
}

// ListJournalEntriesResponse is a page of entries.
type ListJournalEntriesResponse struct {
	Entries    []JournalEntryResponse `json:"entries"`
	Count      int                    `json:"count"`
	Pagination Pagination             `json:"pagination"`
}

// ListJournalEntriesResult is the service-level page of entries.
type ListJournalEntriesResult struct {
	Entries   []domain.JournalEntry
	HasMore   bool
	NextToken *string
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		AccountCode: l.AccountCode,
		AccountName: l.AccountName,
		Debit:       l.Debit,
		Credit:      l.Credit,
		DebitMajor:  utils.FormatMinorUnits(l.Debit),
		CreditMajor: utils.FormatMinorUnits(l.Credit),
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = ToJournalLineResponse(l)
	}
	return JournalEntryResponse{
		ID:              e.EntryID,
		Date:            e.Date.Format(domain.DateLayout),
		Narration:       e.Narration,
		PostedAt:        e.PostedAt,
		ReversesEntryID: e.ReversesEntryID,
		Lines:           lines,
	}
}

// ToJournalEntryResponses converts a slice of entries to DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
