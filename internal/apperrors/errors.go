package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a request collides with previously recorded state.
var ErrConflict = errors.New("conflict")

// Account registry errors.
var (
	ErrDuplicateCode = fmt.Errorf("%w: account code already in use", ErrDuplicate)
	ErrInvalidType   = fmt.Errorf("%w: invalid account type", ErrValidation)
)

// Posting errors. All of them are detected before any row is written,
// except ErrUnknownAccount which is also raised from inside the commit.
var (
	ErrFutureDate        = fmt.Errorf("%w: date cannot be in the future", ErrValidation)
	ErrInsufficientLines = fmt.Errorf("%w: journal entry must have at least two lines", ErrValidation)
	ErrAmbiguousLine     = fmt.Errorf("%w: exactly one of debit or credit must be greater than zero", ErrValidation)
	ErrUnbalancedEntry   = fmt.Errorf("%w: total debits must equal total credits", ErrValidation)
	ErrZeroAmountEntry   = fmt.Errorf("%w: journal entry must have non-zero amounts", ErrValidation)
	ErrAmountOverflow    = fmt.Errorf("%w: line amounts exceed the supported range", ErrValidation)

	// ErrUnknownAccount is referential: the caller can fix it by registering the account.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrUnknownReversedEntry is raised when reverses_entry_id points nowhere.
	ErrUnknownReversedEntry = errors.New("reversed journal entry not found")
)

// Idempotency errors.
var (
	ErrIdempotencyConflict = fmt.Errorf("%w: idempotency key used with a different request body", ErrConflict)
	// ErrIdempotencyRaceLost is internal: another request claimed the key first.
	// It never reaches the caller; the ledger resolves the winning entry instead.
	ErrIdempotencyRaceLost = errors.New("idempotency key claimed by a concurrent request")
)

// AppError carries an HTTP-ish status code and an opaque message for
// failures that are not the caller's fault (storage, commit, scan).
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
