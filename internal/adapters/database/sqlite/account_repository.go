package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/mattn/go-sqlite3"
)

const accountColumns = `id, code, name, type, created_at`

type SQLiteAccountRepository struct {
	db querier
}

func newSQLiteAccountRepository(db querier) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{db: db}
}

var _ portsrepo.AccountRepositoryFacade = (*SQLiteAccountRepository)(nil)

func scanAccount(row scanner) (models.Account, error) {
	var (
		m         models.Account
		createdAt string
	)
	if err := row.Scan(&m.AccountID, &m.Code, &m.Name, &m.AccountType, &createdAt); err != nil {
		return m, err
	}
	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return m, err
	}
	m.CreatedAt = ts
	return m, nil
}

// SaveAccount inserts a new account.
func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	saved, err := scanAccount(r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (code, name, type, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING `+accountColumns+`;
	`, m.Code, m.Name, string(m.AccountType), formatTimestamp(m.CreatedAt)))
	if err != nil {
		if constraintCode(err) == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, account.Code)
		}
		return nil, apperrors.NewAppError(500, "failed to save account", err)
	}
	d := mapping.ToDomainAccount(saved)
	return &d, nil
}

// FindAccountByCode retrieves an account by its code.
func (r *SQLiteAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	m, err := scanAccount(r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = ?;`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code", err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByCodes retrieves every account whose code is in codes.
func (r *SQLiteAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	args := make([]any, len(codes))
	for i, c := range codes {
		args[i] = c
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE code IN (`+placeholders(len(codes))+`);`, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by codes", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		result[m.Code] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// ListAccounts retrieves all accounts ordered by code.
func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType) ([]domain.Account, error) {
	var typeFilter any
	if accountType != nil {
		typeFilter = string(*accountType)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE (?1 IS NULL OR type = ?1)
		ORDER BY code;
	`, typeFilter)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// UpdateAccountName changes the name of the account with the given code.
func (r *SQLiteAccountRepository) UpdateAccountName(ctx context.Context, code string, name string) (*domain.Account, error) {
	m, err := scanAccount(r.db.QueryRowContext(ctx,
		`UPDATE accounts SET name = ? WHERE code = ? RETURNING `+accountColumns+`;`, name, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
		}
		return nil, apperrors.NewAppError(500, "failed to update account name", err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}
