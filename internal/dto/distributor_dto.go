package dto

import (
	"time"

	"github.com/atlastile/cms-go-api/internal/models"
)

// CreateDistributorRequest is the payload for creating a sales partner.
type CreateDistributorRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Region   string `json:"region" validate:"omitempty,max=128"`
	City     string `json:"city" validate:"omitempty,max=128"`
	Address  string `json:"address" validate:"omitempty,max=2000"`
	Phone    string `json:"phone" validate:"omitempty,max=64"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Website  string `json:"website" validate:"omitempty,url,max=255"`
	IsActive *bool  `json:"is_active"`
}

// UpdateDistributorRequest is the partial-update payload for a distributor.
type UpdateDistributorRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Region   *string `json:"region" validate:"omitempty,max=128"`
	City     *string `json:"city" validate:"omitempty,max=128"`
	Address  *string `json:"address" validate:"omitempty,max=2000"`
	Phone    *string `json:"phone" validate:"omitempty,max=64"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Website  *string `json:"website" validate:"omitempty,url,max=255"`
	IsActive *bool   `json:"is_active"`
}

// DistributorResponse is the serialized distributor.
type DistributorResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Website   string    `json:"website"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDistributorResponse converts a distributor model into a DTO.
func NewDistributorResponse(distributor models.Distributor) DistributorResponse {
	return DistributorResponse{
		ID:        distributor.ID,
		Name:      distributor.Name,
		Region:    distributor.Region,
		City:      distributor.City,
		Address:   distributor.Address,
		Phone:     distributor.Phone,
		Email:     distributor.Email,
		Website:   distributor.Website,
		IsActive:  distributor.IsActive,
		CreatedAt: distributor.CreatedAt,
		UpdatedAt: distributor.UpdatedAt,
	}
}

// NewDistributorResponseSlice converts a slice of distributor models.
func NewDistributorResponseSlice(distributors []models.Distributor) []DistributorResponse {
	responses := make([]DistributorResponse, len(distributors))
	for i, distributor := range distributors {
		responses[i] = NewDistributorResponse(distributor)
	}
	return responses
}

// DistributorInquiryRequest is the public contact form submitted by site
// visitors; no authentication is required.
type DistributorInquiryRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=64"`
	Region  string `json:"region" validate:"omitempty,max=128"`
	Message string `json:"message" validate:"required,min=5,max=5000"`
	Source  string `json:"source" validate:"omitempty,max=64"`
}

// SubscribeRequest is the public newsletter signup payload.
type SubscribeRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	Source string `json:"source" validate:"omitempty,max=64"`
}

// SubscriberResponse is the serialized newsletter subscriber.
type SubscriberResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubscriberResponse converts a subscriber model into a DTO.
func NewSubscriberResponse(subscriber models.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:        subscriber.ID,
		Email:     subscriber.Email,
		Source:    subscriber.Source,
		IsActive:  subscriber.IsActive,
		CreatedAt: subscriber.CreatedAt,
	}
}

// NewSubscriberResponseSlice converts a slice of subscriber models.
func NewSubscriberResponseSlice(subscribers []models.Subscriber) []SubscriberResponse {
	responses := make([]SubscriberResponse, len(subscribers))
	for i, subscriber := range subscribers {
		responses[i] = NewSubscriberResponse(subscriber)
	}
	return responses
}
