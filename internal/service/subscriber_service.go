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
	// ErrAlreadySubscribed indicates the email is already on the list.
	ErrAlreadySubscribed = errors.New("email is already subscribed")
	// ErrSubscriberNotFound indicates an unsubscribe for an unknown email.
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// SubscriberService manages newsletter signups from the public site.
type SubscriberService interface {
	Subscribe(ctx context.Context, req audit.Request, payload dto.SubscribeRequest) (dto.SubscriberResponse, error)
	Unsubscribe(ctx context.Context, req audit.Request, email string) error
	List(ctx context.Context, activeOnly bool) ([]dto.SubscriberResponse, error)
}

type subscriberService struct {
	subscribers repository.SubscriberRepository
	events      EventPublisher
	auditor     *audit.Writer
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewSubscriberService constructs the subscriber service.
func NewSubscriberService(
	subscribers repository.SubscriberRepository,
	events EventPublisher,
	auditor *audit.Writer,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubscriberService {
	return &subscriberService{
		subscribers: subscribers,
		events:      events,
		auditor:     auditor,
		validator:   validate,
		logger:      logger.With().Str("component", "subscriber_service").Logger(),
	}
}

func (s *subscriberService) Subscribe(ctx context.Context, req audit.Request, payload dto.SubscribeRequest) (dto.SubscriberResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubscriberResponse{}, err
	}

	if existing, err := s.subscribers.GetByEmail(ctx, payload.Email); err == nil {
		if existing.IsActive {
			return dto.SubscriberResponse{}, ErrAlreadySubscribed
		}
		existing.IsActive = true
		existing.Source = payload.Source
		if err := s.subscribers.Update(ctx, existing); err != nil {
			return dto.SubscriberResponse{}, err
		}
		return dto.NewSubscriberResponse(*existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubscriberResponse{}, err
	}

	subscriber := models.Subscriber{
		Email:    payload.Email,
		Source:   payload.Source,
		IsActive: true,
	}
	if err := s.subscribers.Create(ctx, &subscriber); err != nil {
		return dto.SubscriberResponse{}, err
	}

	entityID := int64(subscriber.ID)
	if _, err := s.auditor.LogGuest(ctx, req, audit.ActionCreate, audit.GuestEvent{
		Entity:      "subscriber",
		EntityID:    &entityID,
		EntityName:  subscriber.Email,
		Description: "Newsletter signup: " + subscriber.Email,
		Hint: &audit.GuestHint{
			Email:  payload.Email,
			Source: payload.Source,
		},
	}); err != nil {
		return dto.SubscriberResponse{}, err
	}

	s.events.Publish(SubjectSubscriberSigned, dto.NewSubscriberResponse(subscriber))
	return dto.NewSubscriberResponse(subscriber), nil
}

func (s *subscriberService) Unsubscribe(ctx context.Context, req audit.Request, email string) error {
	subscriber, err := s.subscribers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriberNotFound
		}
		return err
	}

	if err := s.subscribers.Deactivate(ctx, email); err != nil {
		return err
	}

	entityID := int64(subscriber.ID)
	_, err = s.auditor.LogGuest(ctx, req, audit.ActionDeactivate, audit.GuestEvent{
		Entity:      "subscriber",
		EntityID:    &entityID,
		EntityName:  subscriber.Email,
		Description: "Newsletter unsubscribe: " + subscriber.Email,
		Hint:        &audit.GuestHint{Email: email},
	})
	return err
}

func (s *subscriberService) List(ctx context.Context, activeOnly bool) ([]dto.SubscriberResponse, error) {
	subscribers, err := s.subscribers.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriberResponseSlice(subscribers), nil
}
