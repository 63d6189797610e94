package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageFull is returned when the backing store rejects a write for capacity reasons.
	ErrStorageFull = errors.New("storage full")

	// ErrStorageWriteFailed is returned for every other rejected write.
	ErrStorageWriteFailed = errors.New("storage write failed")

	// ErrNotFound is returned when an update or delete targets an unknown id.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an add reuses an id that already exists.
	ErrConflict = errors.New("already exists")
)

// StorageError records which collection a failed write was aimed at.
type StorageError struct {
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// UserMessage turns a repository error into the text shown to an admin.
// It never returns an empty string for a non-nil error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStorageFull):
		return "Database full. Please use a smaller poster image or delete existing movies."
	case errors.Is(err, ErrStorageWriteFailed):
		return "Failed to save data to secure storage."
	case errors.Is(err, ErrNotFound):
		return "The requested record no longer exists."
	case errors.Is(err, ErrConflict):
		return "A record with this id already exists."
	default:
		return "Operation failed."
	}
}
