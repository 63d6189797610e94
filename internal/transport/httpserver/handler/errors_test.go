package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/poster"
	"movie-catalog-service/internal/validator"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantTag  string
	}{
		{"validation", validator.ValidationErrors{{Field: "title"}}, fiber.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid body", fmt.Errorf("%w: eof", errInvalidBody), fiber.StatusBadRequest, "INVALID_BODY"},
		{"not found", fmt.Errorf("movie x: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{"conflict", domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{
			"storage full",
			&domain.StorageError{Collection: domain.KeyMovies, Err: domain.ErrStorageFull},
			fiber.StatusInsufficientStorage, "STORAGE_FULL",
		},
		{
			"write failed",
			&domain.StorageError{Collection: domain.KeyAds, Err: domain.ErrStorageWriteFailed},
			fiber.StatusInternalServerError, "STORAGE_WRITE_FAILED",
		},
		{"poster too large", poster.ErrPosterTooLarge, fiber.StatusRequestEntityTooLarge, "POSTER_TOO_LARGE"},
		{"not an image", poster.ErrNotImage, fiber.StatusUnprocessableEntity, "INVALID_POSTER"},
		{"bad scheme", poster.ErrUnsupportedURL, fiber.StatusUnprocessableEntity, "INVALID_POSTER"},
		{"fetch failed", fmt.Errorf("%w: timeout", poster.ErrFetchFailed), fiber.StatusBadGateway, "POSTER_FETCH_FAILED"},
		{"fiber error", fiber.NewError(fiber.StatusNotImplemented, "off"), fiber.StatusNotImplemented, "HTTP_ERROR"},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, tag := errorStatus(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}
