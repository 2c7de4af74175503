package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/models"
)

// DistributorFilter narrows distributor queries.
type DistributorFilter struct {
	Page       int
	PageSize   int
	Region     string
	Search     string
	ActiveOnly bool
}

// DistributorRepository manages sales partners.
type DistributorRepository interface {
	Create(ctx context.Context, distributor *models.Distributor) error
	Update(ctx context.Context, distributor *models.Distributor) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Distributor, error)
	List(ctx context.Context, filter DistributorFilter) ([]models.Distributor, int64, error)
}

type distributorRepository struct {
	db *gorm.DB
}

// NewDistributorRepository constructs the distributor repository.
func NewDistributorRepository(db *gorm.DB) DistributorRepository {
	return &distributorRepository{db: db}
}

func (r *distributorRepository) Create(ctx context.Context, distributor *models.Distributor) error {
	return r.db.WithContext(ctx).Create(distributor).Error
}

func (r *distributorRepository) Update(ctx context.Context, distributor *models.Distributor) error {
	return r.db.WithContext(ctx).Save(distributor).Error
}

func (r *distributorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Distributor{}, id).Error
}

func (r *distributorRepository) GetByID(ctx context.Context, id uint) (*models.Distributor, error) {
	var distributor models.Distributor
	if err := r.db.WithContext(ctx).First(&distributor, id).Error; err != nil {
		return nil, err
	}
	return &distributor, nil
}

func (r *distributorRepository) List(ctx context.Context, filter DistributorFilter) ([]models.Distributor, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Distributor{})

	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR city LIKE ?", like, like)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
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

	var distributors []models.Distributor
	if err := query.Order("name ASC").Find(&distributors).Error; err != nil {
		return nil, 0, err
	}

	return distributors, total, nil
}

// SubscriberRepository manages newsletter signups.
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.Subscriber) error
	Update(ctx context.Context, subscriber *models.Subscriber) error
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	List(ctx context.Context, activeOnly bool) ([]models.Subscriber, error)
	Deactivate(ctx context.Context, email string) error
}

type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository constructs the subscriber repository.
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

func (r *subscriberRepository) Update(ctx context.Context, subscriber *models.Subscriber) error {
	return r.db.WithContext(ctx).Save(subscriber).Error
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&subscriber).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *subscriberRepository) List(ctx context.Context, activeOnly bool) ([]models.Subscriber, error) {
	query := r.db.WithContext(ctx).Model(&models.Subscriber{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var subscribers []models.Subscriber
	if err := query.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (r *subscriberRepository) Deactivate(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Where("email = ?", email).
		Update("is_active", false).Error
}
