package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// Project is a portfolio entry showcasing completed work, with a main image
// and an optional gallery.
type Project struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Slug        string                      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Location    string                      `gorm:"size:255" json:"location"`
	ImageURL    string                      `gorm:"size:512" json:"image_url"`
	Gallery     datatypes.JSONSlice[string] `gorm:"type:json" json:"gallery"`
	IsActive    bool                        `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// AuditEntity implements audit.Snapshotter.
func (p *Project) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "project",
		Qualified: "models.Project",
		ID:        auditID(p.ID),
		Label:     fmt.Sprintf("%d: %s", p.ID, p.Title),
	}
}

// AuditFields implements audit.Snapshotter.
func (p *Project) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "slug", Value: p.Slug},
		{Name: "title", Value: p.Title},
		{Name: "description", Value: p.Description},
		{Name: "location", Value: p.Location},
		{Name: "image_url", Value: p.ImageURL},
		{Name: "gallery", Value: []string(p.Gallery)},
		{Name: "is_active", Value: p.IsActive},
	}
}
