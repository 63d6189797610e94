// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-catalog-service/internal/domain"
	"movie-catalog-service/internal/infra/poster"
	"movie-catalog-service/internal/transport/httpserver/dto"
	"movie-catalog-service/internal/validator"
)

var errInvalidBody = errors.New("invalid request body")

// errorStatus maps an error onto an HTTP status and a machine-readable code.
func errorStatus(err error) (int, string) {
	var (
		verrs validator.ValidationErrors
		ferr  *fiber.Error
	)
	switch {
	case errors.As(err, &verrs):
		return fiber.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, "INVALID_BODY"
	case errors.As(err, &ferr):
		return ferr.Code, "HTTP_ERROR"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrStorageFull):
		return fiber.StatusInsufficientStorage, "STORAGE_FULL"
	case errors.Is(err, domain.ErrStorageWriteFailed):
		return fiber.StatusInternalServerError, "STORAGE_WRITE_FAILED"
	case errors.Is(err, poster.ErrPosterTooLarge):
		return fiber.StatusRequestEntityTooLarge, "POSTER_TOO_LARGE"
	case errors.Is(err, poster.ErrNotImage), errors.Is(err, poster.ErrUnsupportedURL):
		return fiber.StatusUnprocessableEntity, "INVALID_POSTER"
	case errors.Is(err, poster.ErrFetchFailed):
		return fiber.StatusBadGateway, "POSTER_FETCH_FAILED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeError renders err as an ErrorResponse. Repository failures carry the
// admin-facing message; poster failures carry their own text.
func writeError(c *fiber.Ctx, logger *zap.Logger, op string, err error) error {
	status, code := errorStatus(err)

	resp := dto.ErrorResponse{Code: code}
	switch code {
	case "VALIDATION_ERROR":
		resp.Error = "validation failed"
		resp.Details = err
	case "INVALID_BODY":
		resp.Error = errInvalidBody.Error()
	case "POSTER_TOO_LARGE", "INVALID_POSTER", "POSTER_FETCH_FAILED", "HTTP_ERROR":
		resp.Error = err.Error()
	default:
		resp.Error = domain.UserMessage(err)
	}

	fields := []zap.Field{zap.String("op", op), zap.Int("status", status), zap.Error(err)}
	if status >= fiber.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Debug("request rejected", fields...)
	}

	return c.Status(status).JSON(resp)
}

func badRequest(c *fiber.Ctx, msg, code string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  code,
	})
}
