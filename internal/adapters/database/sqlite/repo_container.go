package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires handle-backed repositories and the unit of work.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	accountRepo := newSQLiteAccountRepository(db)
	journalRepo := newSQLiteJournalRepository(db, accountRepo)
	idempotencyRepo := newSQLiteIdempotencyRepository(db)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		JournalRepo:     journalRepo,
		IdempotencyRepo: idempotencyRepo,
		UnitOfWork:      newUnitOfWork(db),
	}
}
