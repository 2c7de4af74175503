package dto

import (
	"time"

	"github.com/atlastile/cms-go-api/internal/models"
)

// CreateStoreRequest is the payload for adding a retail location.
type CreateStoreRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=255"`
	Address   string   `json:"address" validate:"required,min=5,max=2000"`
	City      string   `json:"city" validate:"omitempty,max=100"`
	Phone     string   `json:"phone" validate:"omitempty,max=50"`
	Email     string   `json:"email" validate:"omitempty,email,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateStoreRequest is the partial-update payload for a retail location.
type UpdateStoreRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Address   *string  `json:"address" validate:"omitempty,min=5,max=2000"`
	City      *string  `json:"city" validate:"omitempty,max=100"`
	Phone     *string  `json:"phone" validate:"omitempty,max=50"`
	Email     *string  `json:"email" validate:"omitempty,email,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// StoreResponse is the serialized retail location.
type StoreResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStoreResponse converts a store model into a DTO.
func NewStoreResponse(store models.Store) StoreResponse {
	return StoreResponse{
		ID:        store.ID,
		Name:      store.Name,
		Address:   store.Address,
		City:      store.City,
		Phone:     store.Phone,
		Email:     store.Email,
		Latitude:  store.Latitude,
		Longitude: store.Longitude,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}

// NewStoreResponseSlice converts a slice of store models.
func NewStoreResponseSlice(stores []models.Store) []StoreResponse {
	responses := make([]StoreResponse, len(stores))
	for i, store := range stores {
		responses[i] = NewStoreResponse(store)
	}
	return responses
}
