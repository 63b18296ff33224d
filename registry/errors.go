// registry/errors.go
package registry

import (
	"errors"
	"fmt"
)

// ErrDuplicateKey is what store adapters translate a unique-index
// violation into. It is the only mutual-exclusion signal the allocators
// get from the store.
var ErrDuplicateKey = errors.New("duplicate key")

// ValidationError: caller error, nothing was allocated.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError: a referenced id, serial or qr_id does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// ConflictError: a unique-constraint violation that was not recovered by
// the regenerate-and-retry path.
type ConflictError struct {
	Key string
	Err error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %v", e.Key, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// AllocationExhaustedError: the bounded retry loop ran out of attempts.
type AllocationExhaustedError struct {
	Key      string
	Attempts int
}

func (e *AllocationExhaustedError) Error() string {
	return fmt.Sprintf("could not allocate unique %s after %d attempts", e.Key, e.Attempts)
}

// StoreError: any other persistence failure. Fatal for the request,
// never retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
