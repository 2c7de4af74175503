package handler_test

import (
	"context"
	"encoding/json"
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
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/service"
)

type mockSettingService struct {
	lastPublicOnly bool
	response       dto.SettingResponse
	err            error
}

func (m *mockSettingService) Upsert(_ context.Context, _ audit.Request, _ dto.UpsertSettingRequest) (dto.SettingResponse, error) {
	return m.response, m.err
}

func (m *mockSettingService) Delete(_ context.Context, _ audit.Request, _ string) error {
	return m.err
}

func (m *mockSettingService) GetBySlug(_ context.Context, _ string) (dto.SettingResponse, error) {
	return m.response, m.err
}

func (m *mockSettingService) List(_ context.Context, publicOnly bool) ([]dto.SettingResponse, error) {
	m.lastPublicOnly = publicOnly
	if m.err != nil {
		return nil, m.err
	}
	return []dto.SettingResponse{m.response}, nil
}

func newSettingApp(svc service.SettingService) *fiber.App {
	app := fiber.New()
	h := handler.NewSettingHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/admin/settings"))
	h.RegisterPublic(app.Group("/api/settings"))
	return app
}

func TestSettingHandler_UpsertInvalidValue(t *testing.T) {
	app := newSettingApp(&mockSettingService{err: service.ErrSettingValueInvalid})

	req := jsonRequest(t, http.MethodPut, "/api/admin/settings", dto.UpsertSettingRequest{
		Slug:  "count",
		Label: "Count",
		Kind:  models.SettingKindNumber,
		Value: json.RawMessage(`"ten"`),
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSettingHandler_DeleteNotFound(t *testing.T) {
	app := newSettingApp(&mockSettingService{err: service.ErrSettingNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/settings/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSettingHandler_PublicListLimitsToPublicEntries(t *testing.T) {
	svc := &mockSettingService{response: dto.SettingResponse{Slug: "site-title"}}
	app := newSettingApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.lastPublicOnly)
}
