package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/models"
)

// StoreFilter narrows store locator queries.
type StoreFilter struct {
	Page     int
	PageSize int
	Search   string
	City     string
}

// StoreRepository manages retail store locations.
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Store, error)
	EmailExists(ctx context.Context, email string, excludeID uint) (bool, error)
	List(ctx context.Context, filter StoreFilter) ([]models.Store, int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository constructs the store repository.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepository) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Store{}, id).Error
}

func (r *storeRepository) GetByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	if email == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).Model(&models.Store{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *storeRepository) List(ctx context.Context, filter StoreFilter) ([]models.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Store{})

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var stores []models.Store
	if err := query.Order("name ASC, id ASC").Find(&stores).Error; err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}
