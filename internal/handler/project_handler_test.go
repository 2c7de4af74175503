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

type mockProjectService struct {
	lastQuery service.ProjectListQuery
	response  dto.ProjectResponse
	err       error
}

func (m *mockProjectService) Create(_ context.Context, _ audit.Request, _ dto.CreateProjectRequest) (dto.ProjectResponse, error) {
	return m.response, m.err
}

func (m *mockProjectService) Update(_ context.Context, _ audit.Request, _ uint, _ dto.UpdateProjectRequest) (dto.ProjectResponse, error) {
	return m.response, m.err
}

func (m *mockProjectService) Delete(_ context.Context, _ audit.Request, _ uint) error {
	return m.err
}

func (m *mockProjectService) GetBySlug(_ context.Context, _ string) (dto.ProjectResponse, error) {
	return m.response, m.err
}

func (m *mockProjectService) List(_ context.Context, query service.ProjectListQuery) ([]dto.ProjectResponse, dto.PaginationMeta, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, dto.PaginationMeta{}, m.err
	}
	return []dto.ProjectResponse{m.response}, dto.NewPaginationMeta(query.Page, query.PageSize, 1), nil
}

func newProjectApp(svc service.ProjectService) *fiber.App {
	app := fiber.New()
	h := handler.NewProjectHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/admin/projects"))
	h.RegisterPublic(app.Group("/api/projects"))
	return app
}

func TestProjectHandler_PublicListActiveOnly(t *testing.T) {
	svc := &mockProjectService{response: dto.ProjectResponse{Slug: "harbor-tower"}}
	app := newProjectApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/projects?search=harbor", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.lastQuery.ActiveOnly)
	require.Equal(t, "harbor", svc.lastQuery.Search)
}

func TestProjectHandler_AdminListIncludesInactive(t *testing.T) {
	svc := &mockProjectService{}
	app := newProjectApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.False(t, svc.lastQuery.ActiveOnly)
}

func TestProjectHandler_SlugConflict(t *testing.T) {
	app := newProjectApp(&mockProjectService{err: service.ErrProjectSlugTaken})

	req := jsonRequest(t, http.MethodPost, "/api/admin/projects", dto.CreateProjectRequest{
		Slug: "dup", Title: "Duplicate",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestProjectHandler_GetBySlugNotFound(t *testing.T) {
	app := newProjectApp(&mockProjectService{err: service.ErrProjectNotFound})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/projects/missing", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
