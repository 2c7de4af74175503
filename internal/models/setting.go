package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// Setting value kinds; the service validates Value against the JSON Schema
// registered for the kind.
const (
	SettingKindText    = "text"
	SettingKindNumber  = "number"
	SettingKindBoolean = "boolean"
	SettingKindJSON    = "json"
)

// Setting is one site-wide configuration entry addressed by slug.
type Setting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Label     string         `gorm:"size:255;not null" json:"label"`
	Kind      string         `gorm:"size:16;not null;default:text" json:"kind"`
	Value     datatypes.JSON `gorm:"type:json" json:"value"`
	IsPublic  bool           `gorm:"default:false;index" json:"is_public"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

// AuditEntity implements audit.Snapshotter.
func (s *Setting) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "setting",
		Qualified: "models.Setting",
		ID:        auditID(s.ID),
		Label:     fmt.Sprintf("%d: %s", s.ID, s.Label),
	}
}

// AuditFields implements audit.Snapshotter.
func (s *Setting) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "slug", Value: s.Slug},
		{Name: "label", Value: s.Label},
		{Name: "kind", Value: s.Kind},
		{Name: "value", Value: string(s.Value)},
		{Name: "is_public", Value: s.IsPublic},
	}
}

// UploadRecord stores metadata about files pushed to media storage.
type UploadRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	FileName  string    `gorm:"size:255;not null" json:"file_name"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	MimeType  string    `gorm:"size:128;not null" json:"mime_type"`
	SizeBytes int64     `gorm:"not null" json:"size_bytes"`
	Checksum  string    `gorm:"size:128;index" json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}

func (UploadRecord) TableName() string { return "upload_records" }

// AuditEntity implements audit.Snapshotter.
func (u *UploadRecord) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "upload",
		Qualified: "models.UploadRecord",
		ID:        auditID(u.ID),
		Label:     fmt.Sprintf("%d: %s", u.ID, u.FileName),
	}
}

// AuditFields implements audit.Snapshotter.
func (u *UploadRecord) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "file_name", Value: u.FileName},
		{Name: "url", Value: u.URL},
		{Name: "mime_type", Value: u.MimeType},
		{Name: "size_bytes", Value: u.SizeBytes},
		{Name: "checksum", Value: u.Checksum},
	}
}
