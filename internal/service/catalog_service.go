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
	// ErrCategorySlugTaken indicates a slug collision with another category.
	ErrCategorySlugTaken = errors.New("category slug already in use")
)

// CatalogService manages product categories and brochures.
type CatalogService interface {
	CreateCategory(ctx context.Context, req audit.Request, payload dto.CreateProductCategoryRequest) (dto.ProductCategoryResponse, error)
	UpdateCategory(ctx context.Context, req audit.Request, id uint, payload dto.UpdateProductCategoryRequest) (dto.ProductCategoryResponse, error)
	DeleteCategory(ctx context.Context, req audit.Request, id uint) error
	ListCategories(ctx context.Context, activeOnly bool) ([]dto.ProductCategoryResponse, error)

	CreateBrochure(ctx context.Context, req audit.Request, payload dto.CreateBrochureRequest) (dto.BrochureResponse, error)
	DeleteBrochure(ctx context.Context, req audit.Request, id uint) error
	ListBrochures(ctx context.Context) ([]dto.BrochureResponse, error)
}

type catalogService struct {
	categories repository.CategoryRepository
	brochures  repository.BrochureRepository
	auditor    *audit.Writer
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(
	categories repository.CategoryRepository,
	brochures repository.BrochureRepository,
	auditor *audit.Writer,
	validate *validator.Validate,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		categories: categories,
		brochures:  brochures,
		auditor:    auditor,
		validator:  validate,
		logger:     logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, req audit.Request, payload dto.CreateProductCategoryRequest) (dto.ProductCategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProductCategoryResponse{}, err
	}

	if _, err := s.categories.GetBySlug(ctx, payload.Slug); err == nil {
		return dto.ProductCategoryResponse{}, ErrCategorySlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProductCategoryResponse{}, err
	}

	category := payload.ToModel()
	if err := s.categories.Create(ctx, &category); err != nil {
		return dto.ProductCategoryResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &category, audit.ChangeOptions{}); err != nil {
		return dto.ProductCategoryResponse{}, err
	}

	return dto.NewProductCategoryResponse(category), nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, req audit.Request, id uint, payload dto.UpdateProductCategoryRequest) (dto.ProductCategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProductCategoryResponse{}, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductCategoryResponse{}, ErrCategoryNotFound
		}
		return dto.ProductCategoryResponse{}, err
	}

	if payload.Slug != nil && *payload.Slug != category.Slug {
		if _, err := s.categories.GetBySlug(ctx, *payload.Slug); err == nil {
			return dto.ProductCategoryResponse{}, ErrCategorySlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductCategoryResponse{}, err
		}
	}

	before := *category
	payload.Apply(category)
	if err := s.categories.Update(ctx, category); err != nil {
		return dto.ProductCategoryResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, category, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.ProductCategoryResponse{}, err
	}

	return dto.NewProductCategoryResponse(*category), nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, req audit.Request, id uint) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, category, audit.ChangeOptions{})
	return err
}

func (s *catalogService) ListCategories(ctx context.Context, activeOnly bool) ([]dto.ProductCategoryResponse, error) {
	categories, err := s.categories.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewProductCategoryResponseSlice(categories), nil
}

func (s *catalogService) CreateBrochure(ctx context.Context, req audit.Request, payload dto.CreateBrochureRequest) (dto.BrochureResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BrochureResponse{}, err
	}

	brochure := models.Brochure{
		Title:     payload.Title,
		FileURL:   payload.FileURL,
		SizeBytes: payload.SizeBytes,
	}
	if err := s.brochures.Create(ctx, &brochure); err != nil {
		return dto.BrochureResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &brochure, audit.ChangeOptions{}); err != nil {
		return dto.BrochureResponse{}, err
	}

	return dto.NewBrochureResponse(brochure), nil
}

func (s *catalogService) DeleteBrochure(ctx context.Context, req audit.Request, id uint) error {
	brochure, err := s.brochures.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrochureNotFound
		}
		return err
	}

	if err := s.brochures.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, brochure, audit.ChangeOptions{})
	return err
}

func (s *catalogService) ListBrochures(ctx context.Context) ([]dto.BrochureResponse, error) {
	brochures, err := s.brochures.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewBrochureResponseSlice(brochures), nil
}
