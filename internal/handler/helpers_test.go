package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// asRole simulates the locals the JWT middleware binds for a signed-in user,
// so role-guarded routes can be exercised without issuing tokens.
func asRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		c.Locals("user_role", role)
		return c.Next()
	}
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// validationFailure produces a real validator error so handler mapping of
// fail-fast payload validation can be exercised from mocks.
func validationFailure(t *testing.T) error {
	t.Helper()
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(struct {
		Name string `validate:"required"`
	}{})
	require.Error(t, err)
	return err
}
