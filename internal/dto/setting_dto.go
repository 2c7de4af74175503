package dto

import (
	"encoding/json"
	"time"

	"github.com/atlastile/cms-go-api/internal/models"
)

// UpsertSettingRequest creates or replaces a site setting. Value is raw JSON
// and is validated against the schema registered for Kind.
type UpsertSettingRequest struct {
	Slug     string          `json:"slug" validate:"required,min=2,max=128"`
	Label    string          `json:"label" validate:"required,min=2,max=255"`
	Kind     string          `json:"kind" validate:"required,oneof=text number boolean json"`
	Value    json.RawMessage `json:"value" validate:"required"`
	IsPublic *bool           `json:"is_public"`
}

// SettingResponse is the serialized setting.
type SettingResponse struct {
	ID        uint            `json:"id"`
	Slug      string          `json:"slug"`
	Label     string          `json:"label"`
	Kind      string          `json:"kind"`
	Value     json.RawMessage `json:"value"`
	IsPublic  bool            `json:"is_public"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewSettingResponse converts a setting model into a DTO.
func NewSettingResponse(setting models.Setting) SettingResponse {
	return SettingResponse{
		ID:        setting.ID,
		Slug:      setting.Slug,
		Label:     setting.Label,
		Kind:      setting.Kind,
		Value:     json.RawMessage(setting.Value),
		IsPublic:  setting.IsPublic,
		CreatedAt: setting.CreatedAt,
		UpdatedAt: setting.UpdatedAt,
	}
}

// NewSettingResponseSlice converts a slice of setting models.
func NewSettingResponseSlice(settings []models.Setting) []SettingResponse {
	responses := make([]SettingResponse, len(settings))
	for i, setting := range settings {
		responses[i] = NewSettingResponse(setting)
	}
	return responses
}
