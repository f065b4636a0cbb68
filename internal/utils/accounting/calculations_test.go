package accounting

import (
	"math"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedBalance(t *testing.T) {
	totals := domain.LineTotals{TotalDebits: 100000, TotalCredits: 15000}

	for _, tt := range []struct {
		accountType domain.AccountType
		want        int64
	}{
		{domain.Asset, 85000},
		{domain.Expense, 85000},
		{domain.Liability, -85000},
		{domain.Equity, -85000},
		{domain.Revenue, -85000},
	} {
		got, err := SignedBalance(tt.accountType, totals)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, string(tt.accountType))
	}

	_, err := SignedBalance(domain.AccountType("Bogus"), totals)
	assert.Error(t, err)
}

func TestValidateLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []ProposedLine
		wantErr error
	}{
		{
			name:  "balanced",
			lines: []ProposedLine{{"1000", 100000, 0}, {"3000", 0, 100000}},
		},
		{
			name:    "single line",
			lines:   []ProposedLine{{"1000", 100, 0}},
			wantErr: apperrors.ErrInsufficientLines,
		},
		{
			name:    "no lines",
			wantErr: apperrors.ErrInsufficientLines,
		},
		{
			name:    "both sides set",
			lines:   []ProposedLine{{"1000", 100, 100}, {"3000", 0, 100}},
			wantErr: apperrors.ErrAmbiguousLine,
		},
		{
			name:    "neither side set",
			lines:   []ProposedLine{{"1000", 0, 0}, {"3000", 0, 0}},
			wantErr: apperrors.ErrAmbiguousLine,
		},
		{
			name:    "negative amount",
			lines:   []ProposedLine{{"1000", -100, 0}, {"3000", 0, -100}},
			wantErr: apperrors.ErrAmbiguousLine,
		},
		{
			name:    "unbalanced",
			lines:   []ProposedLine{{"1000", 100000, 0}, {"3000", 0, 50000}},
			wantErr: apperrors.ErrUnbalancedEntry,
		},
		{
			name:    "overflow",
			lines:   []ProposedLine{{"1000", math.MaxInt64, 0}, {"1000", 1, 0}, {"3000", 0, 1}},
			wantErr: apperrors.ErrAmountOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := ValidateLines(tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(100000), total)
		})
	}
}

func TestValidateLinesNamesOffendingLine(t *testing.T) {
	_, err := ValidateLines([]ProposedLine{{"1000", 100, 0}, {"3000", 0, 100}, {"4000", 5, 5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "4000")
}
