package accounting

import (
	"fmt"
	"math"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ProposedLine is the minimum a balance check needs to know about a line.
type ProposedLine struct {
	AccountCode string
	Debit       int64
	Credit      int64
}

// SignedBalance applies the normal-balance convention for the account type.
// DEBIT-normal (Asset, Expense): debits - credits
// CREDIT-normal (Liability, Equity, Revenue): credits - debits
func SignedBalance(accountType domain.AccountType, totals domain.LineTotals) (int64, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return totals.TotalDebits - totals.TotalCredits, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return totals.TotalCredits - totals.TotalDebits, nil
	default:
		return 0, fmt.Errorf("unknown account type '%s' encountered", accountType)
	}
}

// ValidateLines runs the structural checks on a proposed entry in a fixed
// order: line count, per-line ambiguity, balance, then non-zero total.
// It returns the total debits on success.
func ValidateLines(lines []ProposedLine) (int64, error) {
	if len(lines) < 2 {
		return 0, apperrors.ErrInsufficientLines
	}

	for i, l := range lines {
		if l.Debit < 0 || l.Credit < 0 || (l.Debit > 0) == (l.Credit > 0) {
			return 0, fmt.Errorf("%w (line %d, account %s)", apperrors.ErrAmbiguousLine, i, l.AccountCode)
		}
	}

	var debits, credits int64
	for _, l := range lines {
		var ok bool
		if debits, ok = addChecked(debits, l.Debit); !ok {
			return 0, apperrors.ErrAmountOverflow
		}
		if credits, ok = addChecked(credits, l.Credit); !ok {
			return 0, apperrors.ErrAmountOverflow
		}
	}

	if debits != credits {
		return 0, fmt.Errorf("%w: debits %d, credits %d", apperrors.ErrUnbalancedEntry, debits, credits)
	}
	if debits == 0 {
		return 0, apperrors.ErrZeroAmountEntry
	}
	return debits, nil
}

func addChecked(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
