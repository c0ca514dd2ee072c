// Package apperr holds the error kinds shared by the catalog, trip,
// reconciliation and sharing packages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationNoop marks an operation skipped because a required field
	// was blank. State is unchanged.
	ErrValidationNoop = errors.New("validation: required field is blank")

	// ErrInvariantViolation marks an operation refused because it would break
	// a model invariant (deleting the last trip group, the system folder...).
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrEmptyOverwriteRejected is returned by upload when an empty local
	// catalog would replace a non-empty remote one.
	ErrEmptyOverwriteRejected = errors.New("upload refused: empty local catalog would overwrite remote data")

	// ErrUserNotFound is returned when a sharing target cannot be resolved.
	ErrUserNotFound = errors.New("user not found")

	// ErrSyncFailure wraps every transport or storage error raised during
	// upload and download.
	ErrSyncFailure = errors.New("sync failure")

	// ErrSyncInProgress is returned when a sync is requested while another
	// one is still outstanding.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrNotFound is returned when an id addressed directly by the caller
	// does not exist.
	ErrNotFound = errors.New("not found")
)

// SyncError carries the operation and the underlying cause of a failed
// upload or download. errors.Is(err, ErrSyncFailure) holds for every
// SyncError.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func (e *SyncError) Is(target error) bool {
	return target == ErrSyncFailure
}

// Sync wraps err as a SyncError for op. A nil err stays nil.
func Sync(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SyncError{Op: op, Err: err}
}

// Invariant returns an ErrInvariantViolation carrying msg.
func Invariant(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvariantViolation)
}

// Blank returns an ErrValidationNoop naming the blank field.
func Blank(field string) error {
	return fmt.Errorf("%s is blank: %w", field, ErrValidationNoop)
}
