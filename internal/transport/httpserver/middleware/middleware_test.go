package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-catalog-service/internal/transport/httpserver/dto"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		pinger    Pinger
		wantReady int
		wantLivez int
	}{
		{"backend up", pingerFunc(func(context.Context) error { return nil }), http.StatusOK, http.StatusOK},
		{"backend down", pingerFunc(func(context.Context) error { return errors.New("closed") }), http.StatusServiceUnavailable, http.StatusOK},
		{"no backend", nil, http.StatusServiceUnavailable, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(NewHealthCheck(tt.pinger))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReady, resp.StatusCode)

			resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/livez", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLivez, resp.StatusCode)
		})
	}
}

func TestRecover(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(Recover(zap.NewNop()))
	app.Use(Logger(zap.NewNop()))
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("nil map write")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "PANIC", out.Code)

	details, ok := out.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), details["requestId"])
}
