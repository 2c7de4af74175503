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
	// ErrPageNotFound indicates the requested page does not exist.
	ErrPageNotFound = errors.New("page not found")
	// ErrPageSlugTaken indicates a slug collision with another page.
	ErrPageSlugTaken = errors.New("page slug already in use")
)

// PageService manages CMS pages.
type PageService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreatePageRequest) (dto.PageResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdatePageRequest) (dto.PageResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	GetBySlug(ctx context.Context, slug string) (dto.PageResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.PageResponse, error)
}

type pageService struct {
	pages     repository.PageRepository
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPageService constructs the page service.
func NewPageService(pages repository.PageRepository, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger) PageService {
	return &pageService{
		pages:     pages,
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "page_service").Logger(),
	}
}

func (s *pageService) Create(ctx context.Context, req audit.Request, payload dto.CreatePageRequest) (dto.PageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PageResponse{}, err
	}

	taken, err := s.pages.SlugExists(ctx, payload.Slug, 0)
	if err != nil {
		return dto.PageResponse{}, err
	}
	if taken {
		return dto.PageResponse{}, ErrPageSlugTaken
	}

	page := models.Page{
		Slug:            payload.Slug,
		Title:           payload.Title,
		Lang:            payload.Lang,
		Body:            payload.Body,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		IsActive:        true,
	}
	if page.Lang == "" {
		page.Lang = "en"
	}
	if payload.IsActive != nil {
		page.IsActive = *payload.IsActive
	}

	if err := s.pages.Create(ctx, &page); err != nil {
		return dto.PageResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &page, audit.ChangeOptions{}); err != nil {
		return dto.PageResponse{}, err
	}

	return dto.NewPageResponse(page), nil
}

func (s *pageService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdatePageRequest) (dto.PageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PageResponse{}, err
	}

	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PageResponse{}, ErrPageNotFound
		}
		return dto.PageResponse{}, err
	}

	if payload.Slug != nil && *payload.Slug != page.Slug {
		taken, err := s.pages.SlugExists(ctx, *payload.Slug, page.ID)
		if err != nil {
			return dto.PageResponse{}, err
		}
		if taken {
			return dto.PageResponse{}, ErrPageSlugTaken
		}
	}

	before := *page
	if payload.Slug != nil {
		page.Slug = *payload.Slug
	}
	if payload.Title != nil {
		page.Title = *payload.Title
	}
	if payload.Lang != nil {
		page.Lang = *payload.Lang
	}
	if payload.Body != nil {
		page.Body = *payload.Body
	}
	if payload.MetaTitle != nil {
		page.MetaTitle = *payload.MetaTitle
	}
	if payload.MetaDescription != nil {
		page.MetaDescription = *payload.MetaDescription
	}
	if payload.IsActive != nil {
		page.IsActive = *payload.IsActive
	}

	if err := s.pages.Update(ctx, page); err != nil {
		return dto.PageResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, page, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.PageResponse{}, err
	}

	return dto.NewPageResponse(*page), nil
}

func (s *pageService) Delete(ctx context.Context, req audit.Request, id uint) error {
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}

	if err := s.pages.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, page, audit.ChangeOptions{})
	return err
}

func (s *pageService) GetBySlug(ctx context.Context, slug string) (dto.PageResponse, error) {
	page, err := s.pages.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PageResponse{}, ErrPageNotFound
		}
		return dto.PageResponse{}, err
	}
	return dto.NewPageResponse(*page), nil
}

func (s *pageService) List(ctx context.Context, activeOnly bool) ([]dto.PageResponse, error) {
	pages, err := s.pages.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewPageResponseSlice(pages), nil
}
