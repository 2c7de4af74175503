package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/models"
)

// CategoryRepository manages product categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.ProductCategory) error
	Update(ctx context.Context, category *models.ProductCategory) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.ProductCategory, error)
	GetBySlug(ctx context.Context, slug string) (*models.ProductCategory, error)
	List(ctx context.Context, activeOnly bool) ([]models.ProductCategory, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository constructs the category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.ProductCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *models.ProductCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProductCategory{}, id).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]models.ProductCategory, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductCategory{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.ProductCategory
	if err := query.Order("order_no ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// BrochureRepository manages downloadable product documents.
type BrochureRepository interface {
	Create(ctx context.Context, brochure *models.Brochure) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Brochure, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.Brochure, error)
}

type brochureRepository struct {
	db *gorm.DB
}

// NewBrochureRepository constructs the brochure repository.
func NewBrochureRepository(db *gorm.DB) BrochureRepository {
	return &brochureRepository{db: db}
}

func (r *brochureRepository) Create(ctx context.Context, brochure *models.Brochure) error {
	return r.db.WithContext(ctx).Create(brochure).Error
}

func (r *brochureRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Brochure{}, id).Error
}

func (r *brochureRepository) GetByID(ctx context.Context, id uint) (*models.Brochure, error) {
	var brochure models.Brochure
	if err := r.db.WithContext(ctx).First(&brochure, id).Error; err != nil {
		return nil, err
	}
	return &brochure, nil
}

func (r *brochureRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Brochure{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *brochureRepository) List(ctx context.Context) ([]models.Brochure, error) {
	var brochures []models.Brochure
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&brochures).Error; err != nil {
		return nil, err
	}
	return brochures, nil
}
