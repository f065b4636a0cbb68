// Package sqlite implements the repository ports on SQLite through
// mattn/go-sqlite3. Dates are stored as YYYY-MM-DD text and timestamps as
// RFC 3339 text so that ordering by column matches calendar order.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/mattn/go-sqlite3"
)

const timestampLayout = time.RFC3339Nano

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ querier = (*sql.DB)(nil)
	_ querier = (*sql.Tx)(nil)
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *sql.DB
}

// Begin starts a new database transaction. The DSN decides the lock mode.
func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// constraintCode returns the extended SQLite error code of err, if any.
func constraintCode(err error) sqlite3.ErrNoExtended {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return sqliteErr.ExtendedCode
	}
	return 0
}

func formatDate(t time.Time) string {
	return domain.NormalizeDate(t).Format(domain.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return t, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// unitOfWork runs a TxFunc inside one SQLite transaction.
type unitOfWork struct {
	BaseRepository
}

func newUnitOfWork(db *sql.DB) portsrepo.UnitOfWork {
	return &unitOfWork{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.UnitOfWork = (*unitOfWork)(nil)

// WithinTx commits only when fn returns nil. The deferred rollback covers
// errors and panics; after a commit it is a no-op. database/sql rolls back
// a transaction whose context is cancelled, so ctx is detached first.
func (u *unitOfWork) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	ctx = context.WithoutCancel(ctx)

	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer u.Rollback(tx) //nolint:errcheck

	accounts := newSQLiteAccountRepository(tx)
	repos := portsrepo.TxRepositories{
		Accounts:    accounts,
		Journals:    newSQLiteJournalRepository(tx, accounts),
		Idempotency: newSQLiteIdempotencyRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	return u.Commit(tx)
}
