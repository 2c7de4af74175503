package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/models"
)

// SettingRepository manages site-wide configuration entries.
type SettingRepository interface {
	Create(ctx context.Context, setting *models.Setting) error
	Update(ctx context.Context, setting *models.Setting) error
	Delete(ctx context.Context, id uint) error
	GetBySlug(ctx context.Context, slug string) (*models.Setting, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, publicOnly bool) ([]models.Setting, error)
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository constructs the setting repository.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Create(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *settingRepository) Update(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

func (r *settingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Setting{}, id).Error
}

func (r *settingRepository) GetBySlug(ctx context.Context, slug string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Setting{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *settingRepository) List(ctx context.Context, publicOnly bool) ([]models.Setting, error) {
	query := r.db.WithContext(ctx).Model(&models.Setting{})
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}

	var settings []models.Setting
	if err := query.Order("slug ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
