package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/atlastile/cms-go-api/internal/middleware"
	"github.com/atlastile/cms-go-api/internal/utils"
)

func newLimitedApp(max int) *fiber.App {
	app := fiber.New()
	app.Use(middleware.RateLimit("forms", max, time.Minute))
	app.Get("/submit", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRateLimitRejectsWithEnvelope(t *testing.T) {
	app := newLimitedApp(1)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/submit", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/submit", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	var body utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	require.False(t, body.Success)
	require.Equal(t, "too many requests", body.Message)
}

func TestRateLimitKeysGuestsBySession(t *testing.T) {
	app := newLimitedApp(1)

	first := httptest.NewRequest(http.MethodGet, "/submit", nil)
	first.Header.Set("Cookie", "session_id=sess-a")
	resp, err := app.Test(first)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A different session from the same IP gets its own budget.
	second := httptest.NewRequest(http.MethodGet, "/submit", nil)
	second.Header.Set("Cookie", "session_id=sess-b")
	resp, err = app.Test(second)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	repeat := httptest.NewRequest(http.MethodGet, "/submit", nil)
	repeat.Header.Set("Cookie", "session_id=sess-a")
	resp, err = app.Test(repeat)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
