package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	lineRepo    portsrepo.LineAggregator
}

// NewBalanceService creates the Balance Calculator.
func NewBalanceService(accountRepo portsrepo.AccountReader, lineRepo portsrepo.LineAggregator, options ...ServiceOption) portssvc.BalanceSvc {
	return &balanceService{
		BaseService: newBaseService(options...),
		accountRepo: accountRepo,
		lineRepo:    lineRepo,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

func (s *balanceService) GetBalance(ctx context.Context, code string, asOf *time.Time) (*domain.Balance, error) {
	if asOf != nil {
		day := domain.NormalizeDate(*asOf)
		if day.After(s.Today()) {
			return nil, fmt.Errorf("%w: as_of %s", apperrors.ErrFutureDate, day.Format(domain.DateLayout))
		}
		asOf = &day
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for balance", slog.String("code", code))
		}
		return nil, err
	}

	totals, err := s.lineRepo.SumLinesByAccount(ctx, account.AccountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum journal lines", slog.String("code", code))
		return nil, err
	}

	balance, err := accounting.SignedBalance(account.Type, totals)
	if err != nil {
		s.LogError(ctx, err, "Account carries an unsupported type", slog.String("code", code))
		return nil, apperrors.NewAppError(500, "failed to compute balance", err)
	}

	return &domain.Balance{
		AccountCode:  account.Code,
		AccountName:  account.Name,
		AccountType:  account.Type,
		TotalDebits:  totals.TotalDebits,
		TotalCredits: totals.TotalCredits,
		Balance:      balance,
		AsOf:         asOf,
	}, nil
}
