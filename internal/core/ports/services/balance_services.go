package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// BalanceSvc computes account positions from posted lines.
type BalanceSvc interface {
	// GetBalance returns the account balance over entries dated on or before
	// asOf, or over all history when asOf is nil.
	GetBalance(ctx context.Context, code string, asOf *time.Time) (*domain.Balance, error)
}
