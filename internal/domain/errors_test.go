package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestStorageError_Unwrap(t *testing.T) {
	err := fmt.Errorf("adding movie: %w", &StorageError{Collection: KeyMovies, Err: ErrStorageFull})

	if !errors.Is(err, ErrStorageFull) {
		t.Error("expected errors.Is to find ErrStorageFull")
	}

	var se *StorageError
	if !errors.As(err, &se) || se.Collection != KeyMovies {
		t.Errorf("expected StorageError for %q, got %v", KeyMovies, se)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "full", err: &StorageError{Collection: KeyMovies, Err: ErrStorageFull}, want: "Database full. Please use a smaller poster image or delete existing movies."},
		{name: "write failed", err: ErrStorageWriteFailed, want: "Failed to save data to secure storage."},
		{name: "not found", err: fmt.Errorf("update: %w", ErrNotFound), want: "The requested record no longer exists."},
		{name: "conflict", err: ErrConflict, want: "A record with this id already exists."},
		{name: "other", err: errors.New("boom"), want: "Operation failed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
