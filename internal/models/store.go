package models

import (
	"fmt"
	"time"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// Store is a physical retail location shown on the public store locator.
// Coordinates are optional because not every location has been geocoded.
type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	City      string    `gorm:"size:100;index" json:"city"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:255;index" json:"email"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Store) TableName() string { return "stores" }

// AuditEntity implements audit.Snapshotter.
func (s *Store) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "store",
		Qualified: "models.Store",
		ID:        auditID(s.ID),
		Label:     fmt.Sprintf("%d: %s", s.ID, s.Name),
	}
}

// AuditFields implements audit.Snapshotter.
func (s *Store) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "name", Value: s.Name},
		{Name: "address", Value: s.Address},
		{Name: "city", Value: s.City},
		{Name: "phone", Value: s.Phone},
		{Name: "email", Value: s.Email},
		{Name: "latitude", Value: s.Latitude},
		{Name: "longitude", Value: s.Longitude},
	}
}
