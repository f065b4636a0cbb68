package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, options...)
	container.Balance = NewBalanceService(repos.AccountRepo, repos.JournalRepo, options...)
	container.Journal = NewJournalService(repos.AccountRepo, repos.JournalRepo, repos.UnitOfWork, options...)
	container.Idempotency = NewIdempotencyService(repos.IdempotencyRepo, options...)
	container.Ledger = NewLedgerService(container.Journal, container.Idempotency, options...)

	return container
}
