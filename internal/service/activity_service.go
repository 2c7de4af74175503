package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/repository"
)

// ErrActivityLogNotFound indicates the requested record does not exist.
var ErrActivityLogNotFound = errors.New("activity log entry not found")

// ActivityService exposes the read side of the audit trail. Records are only
// ever written through the audit writer.
type ActivityService interface {
	List(ctx context.Context, query dto.ActivityLogQuery) ([]dto.ActivityLogResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.ActivityLogResponse, error)
}

type activityService struct {
	repo      repository.ActivityLogRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityService constructs the activity log query service.
func NewActivityService(repo repository.ActivityLogRepository, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) List(ctx context.Context, query dto.ActivityLogQuery) ([]dto.ActivityLogResponse, dto.PaginationMeta, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	if query.PageSize <= 0 {
		query.PageSize = 25
	}

	records, total, err := s.repo.List(ctx, repository.ActivityLogFilter{
		Page:            query.Page,
		PageSize:        query.PageSize,
		ActorType:       strings.TrimSpace(query.ActorType),
		ActorIdentifier: strings.TrimSpace(query.ActorIdentifier),
		ActorName:       strings.TrimSpace(query.ActorName),
		Action:          strings.TrimSpace(query.Action),
		Entity:          strings.TrimSpace(query.Entity),
	})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewActivityLogResponseSlice(records), dto.NewPaginationMeta(query.Page, query.PageSize, total), nil
}

func (s *activityService) Get(ctx context.Context, id uint) (dto.ActivityLogResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityLogResponse{}, ErrActivityLogNotFound
		}
		return dto.ActivityLogResponse{}, err
	}
	return dto.NewActivityLogResponse(*record), nil
}
