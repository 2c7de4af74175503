package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/models"
)

// MenuRepository manages navigation menus and their items.
type MenuRepository interface {
	Create(ctx context.Context, menu *models.Menu) error
	Update(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Menu, error)
	GetBySlug(ctx context.Context, slug string) (*models.Menu, error)
	List(ctx context.Context, activeOnly bool) ([]models.Menu, error)

	CreateItem(ctx context.Context, item *models.MenuItem) error
	UpdateItem(ctx context.Context, item *models.MenuItem) error
	DeleteItem(ctx context.Context, id uint) error
	GetItem(ctx context.Context, id uint) (*models.MenuItem, error)
	ListItems(ctx context.Context, menuID uint) ([]models.MenuItem, error)
}

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository constructs the menu repository.
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *menuRepository) Update(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Save(menu).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Items").Delete(&models.Menu{ID: id}).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.WithContext(ctx).First(&menu, id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) GetBySlug(ctx context.Context, slug string) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) List(ctx context.Context, activeOnly bool) ([]models.Menu, error) {
	query := r.db.WithContext(ctx).Model(&models.Menu{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var menus []models.Menu
	if err := query.Order("name ASC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *menuRepository) CreateItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuRepository) DeleteItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, id).Error
}

func (r *menuRepository) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) ListItems(ctx context.Context, menuID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("menu_id = ?", menuID).
		Order("order_no ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
