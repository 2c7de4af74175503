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

type mockStoreService struct {
	lastReq   audit.Request
	lastQuery service.StoreListQuery
	response  dto.StoreResponse
	err       error
}

func (m *mockStoreService) Create(_ context.Context, req audit.Request, _ dto.CreateStoreRequest) (dto.StoreResponse, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockStoreService) Update(_ context.Context, req audit.Request, _ uint, _ dto.UpdateStoreRequest) (dto.StoreResponse, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockStoreService) Delete(_ context.Context, req audit.Request, _ uint) error {
	m.lastReq = req
	return m.err
}

func (m *mockStoreService) Get(_ context.Context, _ uint) (dto.StoreResponse, error) {
	return m.response, m.err
}

func (m *mockStoreService) List(_ context.Context, query service.StoreListQuery) ([]dto.StoreResponse, dto.PaginationMeta, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, dto.PaginationMeta{}, m.err
	}
	return []dto.StoreResponse{m.response}, dto.NewPaginationMeta(query.Page, query.PageSize, 1), nil
}

func newStoreApp(svc service.StoreService) *fiber.App {
	app := fiber.New()
	h := handler.NewStoreHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/admin/stores"))
	h.RegisterPublic(app.Group("/api/stores"))
	return app
}

func TestStoreHandler_PublicLocatorFilters(t *testing.T) {
	svc := &mockStoreService{response: dto.StoreResponse{Name: "Atlas Jakarta"}}
	app := newStoreApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/stores?city=Jakarta&search=Atlas&page=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Jakarta", svc.lastQuery.City)
	require.Equal(t, "Atlas", svc.lastQuery.Search)
	require.Equal(t, 2, svc.lastQuery.Page)
}

func TestStoreHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: service.ErrStoreNotFound, status: fiber.StatusNotFound},
		{name: "email taken", err: service.ErrStoreEmailTaken, status: fiber.StatusConflict},
		{name: "validation", err: validationFailure(t), status: fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newStoreApp(&mockStoreService{err: tc.err})

			req := jsonRequest(t, http.MethodPost, "/api/admin/stores", dto.CreateStoreRequest{
				Name: "Atlas", Address: "Jl. Sudirman 1",
			})
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestStoreHandler_InvalidID(t *testing.T) {
	app := newStoreApp(&mockStoreService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/stores/zero", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
