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

// ErrBannerNotFound indicates the requested banner does not exist.
var ErrBannerNotFound = errors.New("banner not found")

// BannerService manages homepage banners.
type BannerService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreateBannerRequest) (dto.BannerResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateBannerRequest) (dto.BannerResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	List(ctx context.Context, activeOnly bool) ([]dto.BannerResponse, error)
}

type bannerService struct {
	banners   repository.BannerRepository
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewBannerService constructs the banner service.
func NewBannerService(banners repository.BannerRepository, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger) BannerService {
	return &bannerService{
		banners:   banners,
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "banner_service").Logger(),
	}
}

func (s *bannerService) Create(ctx context.Context, req audit.Request, payload dto.CreateBannerRequest) (dto.BannerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BannerResponse{}, err
	}

	banner := models.Banner{
		Title:    payload.Title,
		Subtitle: payload.Subtitle,
		ImageURL: payload.ImageURL,
		LinkURL:  payload.LinkURL,
		OrderNo:  payload.OrderNo,
		IsActive: true,
	}
	if payload.IsActive != nil {
		banner.IsActive = *payload.IsActive
	}

	if err := s.banners.Create(ctx, &banner); err != nil {
		return dto.BannerResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &banner, audit.ChangeOptions{}); err != nil {
		return dto.BannerResponse{}, err
	}

	return dto.NewBannerResponse(banner), nil
}

func (s *bannerService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateBannerRequest) (dto.BannerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BannerResponse{}, err
	}

	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BannerResponse{}, ErrBannerNotFound
		}
		return dto.BannerResponse{}, err
	}

	before := *banner
	if payload.Title != nil {
		banner.Title = *payload.Title
	}
	if payload.Subtitle != nil {
		banner.Subtitle = *payload.Subtitle
	}
	if payload.ImageURL != nil {
		banner.ImageURL = *payload.ImageURL
	}
	if payload.LinkURL != nil {
		banner.LinkURL = *payload.LinkURL
	}
	if payload.OrderNo != nil {
		banner.OrderNo = *payload.OrderNo
	}
	if payload.IsActive != nil {
		banner.IsActive = *payload.IsActive
	}

	if err := s.banners.Update(ctx, banner); err != nil {
		return dto.BannerResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, banner, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.BannerResponse{}, err
	}

	return dto.NewBannerResponse(*banner), nil
}

func (s *bannerService) Delete(ctx context.Context, req audit.Request, id uint) error {
	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBannerNotFound
		}
		return err
	}

	if err := s.banners.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, banner, audit.ChangeOptions{})
	return err
}

func (s *bannerService) List(ctx context.Context, activeOnly bool) ([]dto.BannerResponse, error) {
	banners, err := s.banners.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewBannerResponseSlice(banners), nil
}
