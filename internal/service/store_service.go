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
	// ErrStoreNotFound indicates the requested store does not exist.
	ErrStoreNotFound = errors.New("store not found")
	// ErrStoreEmailTaken indicates another store already uses the email.
	ErrStoreEmailTaken = errors.New("store email already in use")
)

// StoreListQuery is the service-level filter for the store locator.
type StoreListQuery struct {
	Page     int
	PageSize int
	Search   string
	City     string
}

// StoreService manages retail store locations.
type StoreService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreateStoreRequest) (dto.StoreResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateStoreRequest) (dto.StoreResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	Get(ctx context.Context, id uint) (dto.StoreResponse, error)
	List(ctx context.Context, query StoreListQuery) ([]dto.StoreResponse, dto.PaginationMeta, error)
}

type storeService struct {
	stores    repository.StoreRepository
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStoreService constructs the store locator service.
func NewStoreService(stores repository.StoreRepository, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger) StoreService {
	return &storeService{
		stores:    stores,
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "store_service").Logger(),
	}
}

func (s *storeService) Create(ctx context.Context, req audit.Request, payload dto.CreateStoreRequest) (dto.StoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StoreResponse{}, err
	}

	if payload.Email != "" {
		taken, err := s.stores.EmailExists(ctx, payload.Email, 0)
		if err != nil {
			return dto.StoreResponse{}, err
		}
		if taken {
			return dto.StoreResponse{}, ErrStoreEmailTaken
		}
	}

	store := models.Store{
		Name:      payload.Name,
		Address:   payload.Address,
		City:      payload.City,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	}

	if err := s.stores.Create(ctx, &store); err != nil {
		return dto.StoreResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &store, audit.ChangeOptions{}); err != nil {
		return dto.StoreResponse{}, err
	}

	return dto.NewStoreResponse(store), nil
}

func (s *storeService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateStoreRequest) (dto.StoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StoreResponse{}, err
	}

	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StoreResponse{}, ErrStoreNotFound
		}
		return dto.StoreResponse{}, err
	}

	if payload.Email != nil && *payload.Email != "" && *payload.Email != store.Email {
		taken, err := s.stores.EmailExists(ctx, *payload.Email, store.ID)
		if err != nil {
			return dto.StoreResponse{}, err
		}
		if taken {
			return dto.StoreResponse{}, ErrStoreEmailTaken
		}
	}

	before := *store
	if payload.Name != nil {
		store.Name = *payload.Name
	}
	if payload.Address != nil {
		store.Address = *payload.Address
	}
	if payload.City != nil {
		store.City = *payload.City
	}
	if payload.Phone != nil {
		store.Phone = *payload.Phone
	}
	if payload.Email != nil {
		store.Email = *payload.Email
	}
	if payload.Latitude != nil {
		store.Latitude = payload.Latitude
	}
	if payload.Longitude != nil {
		store.Longitude = payload.Longitude
	}

	if err := s.stores.Update(ctx, store); err != nil {
		return dto.StoreResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, store, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.StoreResponse{}, err
	}

	return dto.NewStoreResponse(*store), nil
}

func (s *storeService) Delete(ctx context.Context, req audit.Request, id uint) error {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}

	if err := s.stores.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, store, audit.ChangeOptions{})
	return err
}

func (s *storeService) Get(ctx context.Context, id uint) (dto.StoreResponse, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StoreResponse{}, ErrStoreNotFound
		}
		return dto.StoreResponse{}, err
	}
	return dto.NewStoreResponse(*store), nil
}

func (s *storeService) List(ctx context.Context, query StoreListQuery) ([]dto.StoreResponse, dto.PaginationMeta, error) {
	stores, total, err := s.stores.List(ctx, repository.StoreFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
		City:     query.City,
	})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewStoreResponseSlice(stores), dto.NewPaginationMeta(query.Page, query.PageSize, total), nil
}
