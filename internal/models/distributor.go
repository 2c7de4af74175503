package models

import (
	"fmt"
	"time"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// Distributor is a regional sales partner shown on the public site.
type Distributor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Region    string    `gorm:"size:128;index" json:"region"`
	City      string    `gorm:"size:128" json:"city"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	Website   string    `gorm:"size:255" json:"website"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Distributor) TableName() string { return "distributors" }

// AuditEntity implements audit.Snapshotter.
func (d *Distributor) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "distributor",
		Qualified: "models.Distributor",
		ID:        auditID(d.ID),
		Label:     fmt.Sprintf("%d: %s", d.ID, d.Name),
	}
}

// AuditFields implements audit.Snapshotter.
func (d *Distributor) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "name", Value: d.Name},
		{Name: "region", Value: d.Region},
		{Name: "city", Value: d.City},
		{Name: "address", Value: d.Address},
		{Name: "phone", Value: d.Phone},
		{Name: "email", Value: d.Email},
		{Name: "website", Value: d.Website},
		{Name: "is_active", Value: d.IsActive},
	}
}

// Subscriber is a newsletter signup collected from the public site.
type Subscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Source    string    `gorm:"size:64" json:"source"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscriber) TableName() string { return "subscribers" }

// AuditEntity implements audit.Snapshotter.
func (s *Subscriber) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "subscriber",
		Qualified: "models.Subscriber",
		ID:        auditID(s.ID),
		Label:     fmt.Sprintf("%d: %s", s.ID, s.Email),
	}
}

// AuditFields implements audit.Snapshotter.
func (s *Subscriber) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "email", Value: s.Email},
		{Name: "source", Value: s.Source},
		{Name: "is_active", Value: s.IsActive},
	}
}
