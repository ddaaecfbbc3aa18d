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

// ErrConfiguration indicates a configuration-level fault (e.g. missing master
// secret). It is fatal for the whole operation and is never downgraded.
var ErrConfiguration = errors.New("configuration error")

// ErrFormat indicates malformed external input or a malformed ciphertext blob.
// It is local to one record/blob and never aborts a batch.
var ErrFormat = errors.New("format error")

// ErrAuthentication indicates an AEAD tag mismatch on decryption, i.e. a
// tampered or corrupted blob, or decryption with the wrong key.
var ErrAuthentication = errors.New("authentication error")

// ErrScraper indicates a failure of the external scraper collaborator.
// It is isolated to one connection.
var ErrScraper = errors.New("scraper error")

// ErrPersistence indicates a record store write failure, isolated to one
// connection. Partial progress is preserved since inserts are idempotent.
var ErrPersistence = errors.New("persistence error")

// ErrRuleEvaluation indicates an invalid rule pattern. The rule is skipped
// and flagged, the engine keeps evaluating the remaining rules.
var ErrRuleEvaluation = errors.New("rule evaluation error")

// ErrSyncInProgress indicates that a sync was rejected because one is already
// running for the same connection.
var ErrSyncInProgress = errors.New("sync already in progress")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
