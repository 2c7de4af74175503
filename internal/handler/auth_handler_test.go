package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/handler"
	"github.com/atlastile/cms-go-api/internal/service"
)

type mockAuthService struct {
	lastReq  audit.Request
	response dto.LoginResponse
	err      error
}

func (m *mockAuthService) Login(_ context.Context, req audit.Request, _ dto.LoginRequest) (dto.LoginResponse, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockAuthService) Logout(_ context.Context, req audit.Request) error {
	m.lastReq = req
	return m.err
}

func newAuthApp(svc service.AuthService, authenticated bool) *fiber.App {
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/auth"))

	protected := app.Group("/api/auth")
	if authenticated {
		protected.Use(func(c *fiber.Ctx) error {
			c.Locals("principal", &audit.Principal{ID: 7, Email: "admin@example.com"})
			return c.Next()
		})
	}
	h.RegisterProtected(protected)
	return app
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockAuthService{response: dto.LoginResponse{AccessToken: "token-123"}}
	app := newAuthApp(svc, false)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Login: "editor", Password: "long-enough"})
	req.Header.Set("User-Agent", "cms-test")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "cms-test", svc.lastReq.UserAgent)

	var response struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, "token-123", response.Data.AccessToken)
}

func TestAuthHandler_LoginErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "invalid credentials", err: service.ErrInvalidCredentials, statusCode: fiber.StatusUnauthorized},
		{name: "disabled account", err: service.ErrAccountDisabled, statusCode: fiber.StatusForbidden},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAuthApp(&mockAuthService{err: tc.err}, false)

			req := jsonRequest(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Login: "editor", Password: "long-enough"})
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestAuthHandler_LogoutCarriesPrincipal(t *testing.T) {
	svc := &mockAuthService{}
	app := newAuthApp(svc, true)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.lastReq.Principal)
	require.Equal(t, "admin@example.com", svc.lastReq.Principal.Email)
}

func TestAuthHandler_LogoutUnauthenticated(t *testing.T) {
	app := newAuthApp(&mockAuthService{err: service.ErrInvalidCredentials}, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
