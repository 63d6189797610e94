package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-catalog-service/internal/transport/httpserver/dto"
)

// Recover turns a handler panic into a 500 ErrorResponse. The request id is
// returned as the error detail so an admin can quote it when reporting.
func Recover(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			rid := requestID(c)
			logger.Error("panic recovered",
				zap.String("panic", fmt.Sprint(r)),
				zap.ByteString("stack", debug.Stack()),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("request_id", rid),
			)

			err = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   "internal server error",
				Code:    "PANIC",
				Details: fiber.Map{"requestId": rid},
			})
		}()

		return c.Next()
	}
}
