package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations. Callers classify failures with
// errors.Is; the error string doubles as the user-facing fallback message.
var (
	// ErrValidation indicates the payload was rejected before or by the store
	ErrValidation = errors.New("validation failed")

	// ErrISBNLength indicates the ISBN did not contain exactly 13 digits
	ErrISBNLength = fmt.Errorf("%w: ISBN must contain exactly 13 digits", ErrValidation)

	// ErrISBNChecksum indicates the ISBN-13 check digit did not match
	ErrISBNChecksum = fmt.Errorf("%w: invalid ISBN checksum", ErrValidation)

	// ErrNotFound indicates the requested book does not exist
	ErrNotFound = errors.New("book not found")

	// ErrConflict indicates a conflicting write, including the local busy guard
	ErrConflict = errors.New("conflicting operation in progress")

	// ErrServer indicates the store failed to process a valid request
	ErrServer = errors.New("book store error")

	// ErrNetwork indicates the store is unreachable
	ErrNetwork = errors.New("book store is unreachable")
)
