package repositories

import "context"

// TxRepositories are repositories bound to a single storage transaction.
type TxRepositories struct {
	Accounts    AccountReader
	Journals    JournalRepositoryFacade
	Idempotency IdempotencyRepositoryFacade
}

// TxFunc is the body of a unit of work.
type TxFunc func(ctx context.Context, repos TxRepositories) error

// UnitOfWork scopes a storage transaction around fn. The transaction commits
// only when fn returns nil; any error or panic rolls it back. Once started,
// the transaction is not cancelled by the caller's context.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}
