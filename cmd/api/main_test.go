package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardsapi/docs"
	handlers "cardsapi/internal/http/handler"
	"cardsapi/internal/http/middleware"
	serviceMocks "cardsapi/internal/service/mocks"
)

func testApp() *fiber.App {
	return newApp(zerolog.Nop(), "*", nil, handlers.Deps{
		Visits:  new(serviceMocks.MockVisitService),
		Reviews: new(serviceMocks.MockReviewService),
		Log:     zerolog.Nop(),
	})
}

func TestNewApp_SwaggerLeavesDocInfoUntouched(t *testing.T) {
	app := testApp()

	hosts := []struct{ host, proto string }{
		{"cards.example.org", "https"},
		{"localhost:8080", "http, https"},
	}
	for _, h := range hosts {
		req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
		req.Host = h.host
		req.Header.Set("X-Forwarded-Proto", h.proto)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), `"/enter"`)
		assert.Contains(t, string(raw), `"/reviews"`)

		assert.Empty(t, docs.SwaggerInfo.Host)
		assert.Empty(t, docs.SwaggerInfo.Schemes)
	}
}

func TestNewApp_Middleware(t *testing.T) {
	app := testApp()

	t.Run("request id echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(middleware.RequestIDHeader, "boot-1")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "boot-1", resp.Header.Get(middleware.RequestIDHeader))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/reviews", nil)
		req.Header.Set("Origin", "https://cards.example.org")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown route uses error envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
