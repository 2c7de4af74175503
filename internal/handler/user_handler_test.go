package handler_test

import (
	"context"
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

type mockUserService struct {
	lastReq  audit.Request
	response dto.UserResponse
	err      error
}

func (m *mockUserService) Create(_ context.Context, req audit.Request, _ dto.CreateUserRequest) (dto.UserResponse, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockUserService) Update(_ context.Context, req audit.Request, _ uint, _ dto.UpdateUserRequest) (dto.UserResponse, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockUserService) Delete(_ context.Context, req audit.Request, _ uint) error {
	m.lastReq = req
	return m.err
}

func (m *mockUserService) Get(_ context.Context, _ uint) (dto.UserResponse, error) {
	return m.response, m.err
}

func (m *mockUserService) List(_ context.Context, query service.UserListQuery) ([]dto.UserResponse, dto.PaginationMeta, error) {
	if m.err != nil {
		return nil, dto.PaginationMeta{}, m.err
	}
	return []dto.UserResponse{m.response}, dto.NewPaginationMeta(query.Page, query.PageSize, 1), nil
}

func (m *mockUserService) ResetPassword(_ context.Context, req audit.Request, _ uint, _ dto.ResetPasswordRequest) error {
	m.lastReq = req
	return m.err
}

func (m *mockUserService) UpdateProfile(_ context.Context, req audit.Request, _ dto.UpdateProfileRequest) (dto.UserResponse, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockUserService) ChangePassword(_ context.Context, req audit.Request, _ dto.ChangePasswordRequest) error {
	m.lastReq = req
	return m.err
}

func newUserApp(svc service.UserService, role string) *fiber.App {
	app := fiber.New()
	h := handler.NewUserHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/admin/users", asRole(role)))
	h.RegisterProfile(app.Group("/api/profile", asRole(role)))
	return app
}

func TestUserHandler_AccountRoutesAreAdminOnly(t *testing.T) {
	app := newUserApp(&mockUserService{}, "editor")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Profile routes only require a signed-in user.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	require.NoError(t, err)
	require.NotEqual(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUserHandler_ProfileRequiresAuthentication(t *testing.T) {
	app := fiber.New()
	handler.NewUserHandler(&mockUserService{}, zerolog.New(io.Discard)).RegisterProfile(app.Group("/api/profile"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUserHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "username taken", err: service.ErrUsernameTaken, status: fiber.StatusConflict},
		{name: "email taken", err: service.ErrUserEmailTaken, status: fiber.StatusConflict},
		{name: "validation", err: validationFailure(t), status: fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newUserApp(&mockUserService{err: tc.err}, "admin")

			req := jsonRequest(t, http.MethodPost, "/api/admin/users", dto.CreateUserRequest{
				Username: "newbie", Email: "newbie@example.com", Password: "s3cret-pass", Role: "viewer",
			})
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestUserHandler_DeleteSelfConflict(t *testing.T) {
	app := newUserApp(&mockUserService{err: service.ErrCannotDeleteSelf}, "admin")

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/users/7", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUserHandler_ChangePasswordWrongCurrent(t *testing.T) {
	app := newUserApp(&mockUserService{err: service.ErrWrongPassword}, "viewer")

	req := jsonRequest(t, http.MethodPut, "/api/profile/password", dto.ChangePasswordRequest{
		CurrentPassword: "wrong password", NewPassword: "next-password",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
