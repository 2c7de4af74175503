package audit

import (
	"time"

	"gorm.io/datatypes"
)

// Record is one immutable activity log row. Records are append-only: nothing
// in the application updates or deletes them after creation.
type Record struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Actor information.
	UserID          *int64            `gorm:"index" json:"user_id"`
	ActorType       ActorType         `gorm:"size:8;not null;default:user;index" json:"actor_type"`
	ActorIdentifier string            `gorm:"size:255;not null;index" json:"actor_identifier"`
	ActorName       string            `gorm:"size:255" json:"actor_name"`
	ActorMetadata   datatypes.JSONMap `gorm:"type:json" json:"actor_metadata"`

	// Activity information.
	Action         Action `gorm:"size:12;not null;index" json:"action"`
	Entity         string `gorm:"size:64;not null;index" json:"entity"`
	ComputedEntity string `gorm:"size:128;not null;default:'-';index" json:"computed_entity"`
	EntityID       *int64 `gorm:"index" json:"entity_id"`
	EntityName     string `gorm:"size:255" json:"entity_name"`

	// Change tracking.
	OldValues     datatypes.JSONMap           `gorm:"type:json" json:"old_values"`
	NewValues     datatypes.JSONMap           `gorm:"type:json" json:"new_values"`
	ChangedFields datatypes.JSONSlice[string] `gorm:"type:json" json:"changed_fields"`

	// Context metadata.
	Description string            `gorm:"type:text" json:"description"`
	IPAddress   string            `gorm:"size:64" json:"ip_address"`
	UserAgent   string            `gorm:"type:text" json:"user_agent"`
	ExtraData   datatypes.JSONMap `gorm:"type:json" json:"extra_data"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName pins the audit table name.
func (Record) TableName() string {
	return "activity_logs"
}

// HasChanges reports whether the record carries data modification snapshots.
func (r Record) HasChanges() bool {
	return len(r.OldValues) > 0 || len(r.NewValues) > 0 || len(r.ChangedFields) > 0
}

// IsGuestActivity reports whether the record was produced by an anonymous actor.
func (r Record) IsGuestActivity() bool {
	return r.ActorType == ActorGuest
}
