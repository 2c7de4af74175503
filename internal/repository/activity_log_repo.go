package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// ActivityLogFilter narrows activity log queries.
type ActivityLogFilter struct {
	Page            int
	PageSize        int
	ActorType       string
	ActorIdentifier string
	ActorName       string
	Action          string
	Entity          string
}

// ActivityLogRepository persists and queries the append-only audit trail. The
// write side satisfies audit.Store; there is deliberately no update or delete.
type ActivityLogRepository interface {
	Create(ctx context.Context, record *audit.Record) error
	List(ctx context.Context, filter ActivityLogFilter) ([]audit.Record, int64, error)
	GetByID(ctx context.Context, id uint) (*audit.Record, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, record *audit.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]audit.Record, int64, error) {
	query := r.db.WithContext(ctx).Model(&audit.Record{})

	if filter.ActorType != "" {
		query = query.Where("actor_type = ?", filter.ActorType)
	}
	if filter.ActorIdentifier != "" {
		query = query.Where("actor_identifier LIKE ?", "%"+filter.ActorIdentifier+"%")
	}
	if filter.ActorName != "" {
		query = query.Where("actor_name LIKE ?", "%"+filter.ActorName+"%")
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
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

	var records []audit.Record
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *activityLogRepository) GetByID(ctx context.Context, id uint) (*audit.Record, error) {
	var record audit.Record
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
