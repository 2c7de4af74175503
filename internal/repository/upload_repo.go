package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/models"
)

// UploadRepository stores metadata about files pushed to media storage.
type UploadRepository interface {
	Create(ctx context.Context, record *models.UploadRecord) error
	GetByChecksum(ctx context.Context, checksum string) (*models.UploadRecord, error)
	List(ctx context.Context, limit int) ([]models.UploadRecord, error)
}

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository constructs the upload repository.
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, record *models.UploadRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *uploadRepository) GetByChecksum(ctx context.Context, checksum string) (*models.UploadRecord, error) {
	var record models.UploadRecord
	err := r.db.WithContext(ctx).Where("checksum = ?", checksum).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *uploadRepository) List(ctx context.Context, limit int) ([]models.UploadRecord, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.UploadRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
