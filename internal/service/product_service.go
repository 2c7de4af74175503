package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/repository"
)

var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductSlugTaken indicates a slug collision with another product.
	ErrProductSlugTaken = errors.New("product slug already in use")
	// ErrCategoryNotFound indicates a reference to a missing category.
	ErrCategoryNotFound = errors.New("product category not found")
	// ErrBrochureNotFound indicates a reference to a missing brochure.
	ErrBrochureNotFound = errors.New("brochure not found")
)

// ProductListQuery is the service-level filter for product listings.
type ProductListQuery struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID *uint
	Lang       string
	ActiveOnly bool
}

// ProductService manages the catalogue and records every mutation in the
// activity log.
type ProductService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreateProductRequest) (dto.ProductResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateProductRequest) (dto.ProductResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	Get(ctx context.Context, id uint) (dto.ProductResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.ProductResponse, error)
	List(ctx context.Context, query ProductListQuery) ([]dto.ProductResponse, dto.PaginationMeta, error)
	Import(ctx context.Context, req audit.Request, payload dto.ImportProductsRequest) (dto.ImportProductsResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brochures  repository.BrochureRepository
	auditor    *audit.Writer
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewProductService constructs the product service.
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brochures repository.BrochureRepository,
	auditor *audit.Writer,
	validate *validator.Validate,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		brochures:  brochures,
		auditor:    auditor,
		validator:  validate,
		logger:     logger.With().Str("component", "product_service").Logger(),
	}
}

func (s *productService) Create(ctx context.Context, req audit.Request, payload dto.CreateProductRequest) (dto.ProductResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProductResponse{}, err
	}
	if err := s.checkReferences(ctx, payload.CategoryID, payload.BrochureID); err != nil {
		return dto.ProductResponse{}, err
	}

	taken, err := s.products.SlugExists(ctx, payload.Slug, 0)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	if taken {
		return dto.ProductResponse{}, ErrProductSlugTaken
	}

	product := payload.ToModel()
	if err := s.products.Create(ctx, &product); err != nil {
		return dto.ProductResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &product, audit.ChangeOptions{}); err != nil {
		return dto.ProductResponse{}, err
	}

	return dto.NewProductResponse(product), nil
}

func (s *productService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateProductRequest) (dto.ProductResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProductResponse{}, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductResponse{}, ErrProductNotFound
		}
		return dto.ProductResponse{}, err
	}

	if payload.Slug != nil && *payload.Slug != product.Slug {
		taken, err := s.products.SlugExists(ctx, *payload.Slug, product.ID)
		if err != nil {
			return dto.ProductResponse{}, err
		}
		if taken {
			return dto.ProductResponse{}, ErrProductSlugTaken
		}
	}
	if err := s.checkReferences(ctx, payload.CategoryID, payload.BrochureID); err != nil {
		return dto.ProductResponse{}, err
	}

	before := *product
	payload.Apply(product)
	if err := s.products.Update(ctx, product); err != nil {
		return dto.ProductResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, product, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.ProductResponse{}, err
	}

	return dto.NewProductResponse(*product), nil
}

func (s *productService) Delete(ctx context.Context, req audit.Request, id uint) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, product, audit.ChangeOptions{})
	return err
}

func (s *productService) Get(ctx context.Context, id uint) (dto.ProductResponse, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductResponse{}, ErrProductNotFound
		}
		return dto.ProductResponse{}, err
	}
	return dto.NewProductResponse(*product), nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (dto.ProductResponse, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductResponse{}, ErrProductNotFound
		}
		return dto.ProductResponse{}, err
	}
	return dto.NewProductResponse(*product), nil
}

func (s *productService) List(ctx context.Context, query ProductListQuery) ([]dto.ProductResponse, dto.PaginationMeta, error) {
	filter := repository.ProductFilter{
		Page:       query.Page,
		PageSize:   query.PageSize,
		Search:     query.Search,
		CategoryID: query.CategoryID,
		Lang:       query.Lang,
		ActiveOnly: query.ActiveOnly,
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewProductResponseSlice(products), dto.NewPaginationMeta(query.Page, query.PageSize, total), nil
}

// Import processes the batch item by item so one bad row does not sink the
// rest, then records a single summary entry in the activity log.
func (s *productService) Import(ctx context.Context, req audit.Request, payload dto.ImportProductsRequest) (dto.ImportProductsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ImportProductsResponse{}, err
	}

	var (
		created   []audit.Snapshotter
		succeeded int
		failures  []string
	)

	for i, item := range payload.Items {
		if err := s.importOne(ctx, item, &created); err != nil {
			failures = append(failures, fmt.Sprintf("item %d (%s): %v", i+1, item.Slug, err))
			continue
		}
		succeeded++
	}

	if len(created) > 0 {
		if _, err := s.auditor.LogBulk(ctx, req, audit.ActionImport, created, audit.BulkSummary{
			OperationName: "product import",
			SuccessCount:  succeeded,
			ErrorCount:    len(failures),
		}); err != nil {
			return dto.ImportProductsResponse{}, err
		}
	}

	return dto.ImportProductsResponse{
		SuccessCount: succeeded,
		ErrorCount:   len(failures),
		Errors:       failures,
	}, nil
}

func (s *productService) importOne(ctx context.Context, item dto.CreateProductRequest, created *[]audit.Snapshotter) error {
	if err := s.checkReferences(ctx, item.CategoryID, item.BrochureID); err != nil {
		return err
	}
	taken, err := s.products.SlugExists(ctx, item.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrProductSlugTaken
	}

	product := item.ToModel()
	if err := s.products.Create(ctx, &product); err != nil {
		return err
	}
	*created = append(*created, &product)
	return nil
}

func (s *productService) checkReferences(ctx context.Context, categoryID, brochureID *uint) error {
	if categoryID != nil {
		if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	if brochureID != nil {
		exists, err := s.brochures.Exists(ctx, *brochureID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrBrochureNotFound
		}
	}
	return nil
}
