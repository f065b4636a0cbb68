package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the caller's idempotency token.
const IdempotencyKeyHeader = "Idempotency-Key"

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalReaderSvc
	ledgerService  portssvc.LedgerSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalReaderSvc, ls portssvc.LedgerSvc) *journalHandler {
	return &journalHandler{
		journalService: js,
		ledgerService:  ls,
	}
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalReaderSvc, ledgerService portssvc.LedgerSvc) {
	h := newJournalHandler(journalService, ledgerService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates and atomically posts a balanced entry. With an Idempotency-Key header, repeating the same request returns the original entry.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Idempotency token"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry and lines"
// @Success 201 {object} dto.PostJournalEntryResponse "Entry posted"
// @Success 200 {object} dto.PostJournalEntryResponse "Earlier entry replayed"
// @Failure 400 {object} map[string]string "Invalid entry or unknown account"
// @Failure 409 {object} map[string]string "Idempotency key reused with a different request"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	var body dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	req, err := body.ToPostEntryRequest()
	if err != nil {
		respondBindError(c, err, "request format")
		return
	}

	var token *string
	if key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)); key != "" {
		token = &key
	}

	logger := loggerFor(c)
	logger.Info("Received request to post journal entry",
		slog.Int("lines", len(req.Lines)),
		slog.Bool("idempotency_key", token != nil))

	entry, replayed, err := h.ledgerService.PostEntry(c.Request.Context(), token, req)
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	logger.Info("Journal entry posted", slog.Int64("entry_id", entry.EntryID), slog.Bool("idempotent", replayed))
	c.JSON(status, dto.PostJournalEntryResponse{
		Entry:      dto.ToJournalEntryResponse(entry),
		Idempotent: replayed,
	})
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines in posting order
// @Tags journal-entries
// @Produce  json
// @Param   id path int true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.ErrNotFound, "Failed to retrieve journal entry")
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest date first. next_token continues after the previous page and overrides offset.
// @Tags journal-entries
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Entries to skip" default(0)
// @Param   next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}

	offset := params.Offset
	if params.NextToken != "" {
		offset = 0
	}
	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{
		Entries: dto.ToJournalEntryResponses(page.Entries),
		Count:   len(page.Entries),
		Pagination: dto.Pagination{
			Limit:     params.Limit,
			Offset:    offset,
			HasMore:   page.HasMore,
			NextToken: page.NextToken,
		},
	})
}
