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

type mockSubscriberService struct {
	lastReq   audit.Request
	lastEmail string
	err       error
}

func (m *mockSubscriberService) Subscribe(_ context.Context, req audit.Request, payload dto.SubscribeRequest) (dto.SubscriberResponse, error) {
	m.lastReq = req
	m.lastEmail = payload.Email
	if m.err != nil {
		return dto.SubscriberResponse{}, m.err
	}
	return dto.SubscriberResponse{Email: payload.Email, IsActive: true}, nil
}

func (m *mockSubscriberService) Unsubscribe(_ context.Context, req audit.Request, email string) error {
	m.lastReq = req
	m.lastEmail = email
	return m.err
}

func (m *mockSubscriberService) List(_ context.Context, _ bool) ([]dto.SubscriberResponse, error) {
	return nil, m.err
}

func newSubscriberApp(svc service.SubscriberService) *fiber.App {
	app := fiber.New()
	handler.NewSubscriberHandler(svc, zerolog.New(io.Discard)).RegisterPublic(app.Group("/api/subscribers"))
	return app
}

func TestSubscriberHandler_Signup(t *testing.T) {
	svc := &mockSubscriberService{}
	app := newSubscriberApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/subscribers", dto.SubscribeRequest{Email: "reader@example.com"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "reader@example.com", svc.lastEmail)
	require.Nil(t, svc.lastReq.Principal)
}

func TestSubscriberHandler_DuplicateSignup(t *testing.T) {
	app := newSubscriberApp(&mockSubscriberService{err: service.ErrAlreadySubscribed})

	req := jsonRequest(t, http.MethodPost, "/api/subscribers", dto.SubscribeRequest{Email: "dup@example.com"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSubscriberHandler_AdminListingRequiresAdminRole(t *testing.T) {
	h := handler.NewSubscriberHandler(&mockSubscriberService{}, zerolog.New(io.Discard))

	app := fiber.New()
	h.Register(app.Group("/api/admin/subscribers", asRole("editor")))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/subscribers", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	admin := fiber.New()
	h.Register(admin.Group("/api/admin/subscribers", asRole("admin")))

	resp, err = admin.Test(httptest.NewRequest(http.MethodGet, "/api/admin/subscribers", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSubscriberHandler_UnsubscribeUnknown(t *testing.T) {
	app := newSubscriberApp(&mockSubscriberService{err: service.ErrSubscriberNotFound})

	req := jsonRequest(t, http.MethodPost, "/api/subscribers/unsubscribe", dto.SubscribeRequest{Email: "ghost@example.com"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
