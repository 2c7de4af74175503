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
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
)

// ErrDistributorNotFound indicates the requested distributor does not exist.
var ErrDistributorNotFound = errors.New("distributor not found")

// DistributorListQuery is the service-level filter for distributor listings.
type DistributorListQuery struct {
	Page       int
	PageSize   int
	Region     string
	Search     string
	ActiveOnly bool
}

// DistributorService manages sales partners and accepts public inquiries from
// unauthenticated visitors.
type DistributorService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreateDistributorRequest) (dto.DistributorResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateDistributorRequest) (dto.DistributorResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	List(ctx context.Context, query DistributorListQuery) ([]dto.DistributorResponse, dto.PaginationMeta, error)
	SubmitInquiry(ctx context.Context, req audit.Request, payload dto.DistributorInquiryRequest) error
}

type distributorService struct {
	distributors repository.DistributorRepository
	events       EventPublisher
	auditor      *audit.Writer
	validator    *validator.Validate
	logger       zerolog.Logger
}

// NewDistributorService constructs the distributor service.
func NewDistributorService(
	distributors repository.DistributorRepository,
	events EventPublisher,
	auditor *audit.Writer,
	validate *validator.Validate,
	logger zerolog.Logger,
) DistributorService {
	return &distributorService{
		distributors: distributors,
		events:       events,
		auditor:      auditor,
		validator:    validate,
		logger:       logger.With().Str("component", "distributor_service").Logger(),
	}
}

func (s *distributorService) Create(ctx context.Context, req audit.Request, payload dto.CreateDistributorRequest) (dto.DistributorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DistributorResponse{}, err
	}

	distributor := models.Distributor{
		Name:     payload.Name,
		Region:   payload.Region,
		City:     payload.City,
		Address:  payload.Address,
		Phone:    payload.Phone,
		Email:    payload.Email,
		Website:  payload.Website,
		IsActive: true,
	}
	if payload.IsActive != nil {
		distributor.IsActive = *payload.IsActive
	}

	if err := s.distributors.Create(ctx, &distributor); err != nil {
		return dto.DistributorResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &distributor, audit.ChangeOptions{}); err != nil {
		return dto.DistributorResponse{}, err
	}

	return dto.NewDistributorResponse(distributor), nil
}

func (s *distributorService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateDistributorRequest) (dto.DistributorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DistributorResponse{}, err
	}

	distributor, err := s.distributors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DistributorResponse{}, ErrDistributorNotFound
		}
		return dto.DistributorResponse{}, err
	}

	before := *distributor
	if payload.Name != nil {
		distributor.Name = *payload.Name
	}
	if payload.Region != nil {
		distributor.Region = *payload.Region
	}
	if payload.City != nil {
		distributor.City = *payload.City
	}
	if payload.Address != nil {
		distributor.Address = *payload.Address
	}
	if payload.Phone != nil {
		distributor.Phone = *payload.Phone
	}
	if payload.Email != nil {
		distributor.Email = *payload.Email
	}
	if payload.Website != nil {
		distributor.Website = *payload.Website
	}
	if payload.IsActive != nil {
		distributor.IsActive = *payload.IsActive
	}

	if err := s.distributors.Update(ctx, distributor); err != nil {
		return dto.DistributorResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, distributor, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.DistributorResponse{}, err
	}

	return dto.NewDistributorResponse(*distributor), nil
}

func (s *distributorService) Delete(ctx context.Context, req audit.Request, id uint) error {
	distributor, err := s.distributors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDistributorNotFound
		}
		return err
	}

	if err := s.distributors.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, distributor, audit.ChangeOptions{})
	return err
}

func (s *distributorService) List(ctx context.Context, query DistributorListQuery) ([]dto.DistributorResponse, dto.PaginationMeta, error) {
	distributors, total, err := s.distributors.List(ctx, repository.DistributorFilter{
		Page:       query.Page,
		PageSize:   query.PageSize,
		Region:     query.Region,
		Search:     query.Search,
		ActiveOnly: query.ActiveOnly,
	})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewDistributorResponseSlice(distributors), dto.NewPaginationMeta(query.Page, query.PageSize, total), nil
}

// SubmitInquiry records a public contact form submission in the activity log,
// attributed through the guest fallback chain, and notifies downstream
// consumers.
func (s *distributorService) SubmitInquiry(ctx context.Context, req audit.Request, payload dto.DistributorInquiryRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	_, err := s.auditor.LogGuest(ctx, req, audit.ActionSubmit, audit.GuestEvent{
		Entity:      "distributor_inquiry",
		EntityName:  payload.Name,
		Description: fmt.Sprintf("Distributor inquiry submitted by %s", payload.Name),
		ExtraData: map[string]any{
			"region":  payload.Region,
			"message": payload.Message,
		},
		Hint: &audit.GuestHint{
			Name:   payload.Name,
			Email:  payload.Email,
			Phone:  payload.Phone,
			Source: payload.Source,
		},
	})
	if err != nil {
		return err
	}

	s.events.Publish(SubjectInquiryReceived, payload)
	return nil
}
