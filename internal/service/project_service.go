package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
)

var (
	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectSlugTaken indicates a slug collision with another project.
	ErrProjectSlugTaken = errors.New("project slug already in use")
)

// ProjectListQuery is the service-level filter for portfolio listings.
type ProjectListQuery struct {
	Page       int
	PageSize   int
	Search     string
	ActiveOnly bool
}

// ProjectService manages portfolio projects.
type ProjectService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreateProjectRequest) (dto.ProjectResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateProjectRequest) (dto.ProjectResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	GetBySlug(ctx context.Context, slug string) (dto.ProjectResponse, error)
	List(ctx context.Context, query ProjectListQuery) ([]dto.ProjectResponse, dto.PaginationMeta, error)
}

type projectService struct {
	projects  repository.ProjectRepository
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProjectService constructs the portfolio service.
func NewProjectService(projects repository.ProjectRepository, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger) ProjectService {
	return &projectService{
		projects:  projects,
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) Create(ctx context.Context, req audit.Request, payload dto.CreateProjectRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	taken, err := s.projects.SlugExists(ctx, payload.Slug, 0)
	if err != nil {
		return dto.ProjectResponse{}, err
	}
	if taken {
		return dto.ProjectResponse{}, ErrProjectSlugTaken
	}

	project := models.Project{
		Slug:        payload.Slug,
		Title:       payload.Title,
		Description: payload.Description,
		Location:    payload.Location,
		ImageURL:    payload.ImageURL,
		Gallery:     payload.Gallery,
		IsActive:    true,
	}
	if payload.IsActive != nil {
		project.IsActive = *payload.IsActive
	}

	if err := s.projects.Create(ctx, &project); err != nil {
		return dto.ProjectResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &project, audit.ChangeOptions{}); err != nil {
		return dto.ProjectResponse{}, err
	}

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateProjectRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	if payload.Slug != nil && *payload.Slug != project.Slug {
		taken, err := s.projects.SlugExists(ctx, *payload.Slug, project.ID)
		if err != nil {
			return dto.ProjectResponse{}, err
		}
		if taken {
			return dto.ProjectResponse{}, ErrProjectSlugTaken
		}
	}

	before := *project
	if payload.Slug != nil {
		project.Slug = *payload.Slug
	}
	if payload.Title != nil {
		project.Title = *payload.Title
	}
	if payload.Description != nil {
		project.Description = *payload.Description
	}
	if payload.Location != nil {
		project.Location = *payload.Location
	}
	if payload.ImageURL != nil {
		project.ImageURL = *payload.ImageURL
	}
	if payload.Gallery != nil {
		project.Gallery = payload.Gallery
	}
	if payload.IsActive != nil {
		project.IsActive = *payload.IsActive
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return dto.ProjectResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, project, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.ProjectResponse{}, err
	}

	return dto.NewProjectResponse(*project), nil
}

func (s *projectService) Delete(ctx context.Context, req audit.Request, id uint) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, project, audit.ChangeOptions{})
	return err
}

func (s *projectService) GetBySlug(ctx context.Context, slug string) (dto.ProjectResponse, error) {
	project, err := s.projects.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}
	return dto.NewProjectResponse(*project), nil
}

func (s *projectService) List(ctx context.Context, query ProjectListQuery) ([]dto.ProjectResponse, dto.PaginationMeta, error) {
	projects, total, err := s.projects.List(ctx, repository.ProjectFilter{
		Page:       query.Page,
		PageSize:   query.PageSize,
		Search:     query.Search,
		ActiveOnly: query.ActiveOnly,
	})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewProjectResponseSlice(projects), dto.NewPaginationMeta(query.Page, query.PageSize, total), nil
}
