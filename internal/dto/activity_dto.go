package dto

import (
	"time"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// ActivityLogQuery is the filter surface for the activity log listing.
type ActivityLogQuery struct {
	Page            int    `query:"page" validate:"omitempty,gte=1"`
	PageSize        int    `query:"page_size" validate:"omitempty,gte=1,lte=100"`
	ActorType       string `query:"actor_type" validate:"omitempty,oneof=user guest"`
	ActorIdentifier string `query:"actor_identifier" validate:"omitempty,max=255"`
	ActorName       string `query:"actor_name" validate:"omitempty,max=255"`
	Action          string `query:"action" validate:"omitempty,max=12"`
	Entity          string `query:"entity" validate:"omitempty,max=64"`
}

// ActivityLogResponse is the serialized activity record.
type ActivityLogResponse struct {
	ID              uint           `json:"id"`
	UserID          *int64         `json:"user_id"`
	ActorType       string         `json:"actor_type"`
	ActorIdentifier string         `json:"actor_identifier"`
	ActorName       string         `json:"actor_name"`
	ActorMetadata   map[string]any `json:"actor_metadata,omitempty"`
	Action          string         `json:"action"`
	Entity          string         `json:"entity"`
	ComputedEntity  string         `json:"computed_entity"`
	EntityID        *int64         `json:"entity_id"`
	EntityName      string         `json:"entity_name"`
	OldValues       map[string]any `json:"old_values,omitempty"`
	NewValues       map[string]any `json:"new_values,omitempty"`
	ChangedFields   []string       `json:"changed_fields,omitempty"`
	HasChanges      bool           `json:"has_changes"`
	Description     string         `json:"description"`
	IPAddress       string         `json:"ip_address"`
	UserAgent       string         `json:"user_agent"`
	ExtraData       map[string]any `json:"extra_data,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewActivityLogResponse converts an activity record into a DTO. Actor
// metadata is only meaningful for guest records (email/phone hints, campaign
// tags), so user records are serialized without it.
func NewActivityLogResponse(record audit.Record) ActivityLogResponse {
	response := ActivityLogResponse{
		ID:              record.ID,
		UserID:          record.UserID,
		ActorType:       string(record.ActorType),
		ActorIdentifier: record.ActorIdentifier,
		ActorName:       record.ActorName,
		Action:          string(record.Action),
		Entity:          record.Entity,
		ComputedEntity:  record.ComputedEntity,
		EntityID:        record.EntityID,
		EntityName:      record.EntityName,
		OldValues:       map[string]any(record.OldValues),
		NewValues:       map[string]any(record.NewValues),
		ChangedFields:   []string(record.ChangedFields),
		HasChanges:      record.HasChanges(),
		Description:     record.Description,
		IPAddress:       record.IPAddress,
		UserAgent:       record.UserAgent,
		ExtraData:       map[string]any(record.ExtraData),
		CreatedAt:       record.CreatedAt,
	}
	if record.IsGuestActivity() {
		response.ActorMetadata = map[string]any(record.ActorMetadata)
	}
	return response
}

// NewActivityLogResponseSlice converts a slice of activity records.
func NewActivityLogResponseSlice(records []audit.Record) []ActivityLogResponse {
	responses := make([]ActivityLogResponse, len(records))
	for i, record := range records {
		responses[i] = NewActivityLogResponse(record)
	}
	return responses
}
