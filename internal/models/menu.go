package models

import (
	"fmt"
	"time"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// Menu is a named navigation container, e.g. "header" or "footer".
type Menu struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Slug      string     `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Lang      string     `gorm:"size:10;not null;default:en" json:"lang"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	Items     []MenuItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Menu) TableName() string { return "menus" }

// AuditEntity implements audit.Snapshotter.
func (m *Menu) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "menu",
		Qualified: "models.Menu",
		ID:        auditID(m.ID),
		Label:     fmt.Sprintf("%d: %s", m.ID, m.Name),
	}
}

// AuditFields implements audit.Snapshotter.
func (m *Menu) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "slug", Value: m.Slug},
		{Name: "name", Value: m.Name},
		{Name: "lang", Value: m.Lang},
		{Name: "is_active", Value: m.IsActive},
	}
}

// MenuItem is one navigation entry; items nest one level via ParentID.
type MenuItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MenuID    uint      `gorm:"not null;index" json:"menu_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	URL       string    `gorm:"size:512" json:"url"`
	OrderNo   int       `gorm:"default:0" json:"order_no"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Children []MenuItem `gorm:"-" json:"children,omitempty"`
}

func (MenuItem) TableName() string { return "menu_items" }

// AuditEntity implements audit.Snapshotter.
func (i *MenuItem) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "menu_item",
		Qualified: "models.MenuItem",
		ID:        auditID(i.ID),
		Label:     fmt.Sprintf("%d: %s", i.ID, i.Title),
	}
}

// AuditFields implements audit.Snapshotter.
func (i *MenuItem) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "menu_id", Value: i.MenuID},
		{Name: "parent_id", Value: i.ParentID},
		{Name: "title", Value: i.Title},
		{Name: "url", Value: i.URL},
		{Name: "order_no", Value: i.OrderNo},
		{Name: "is_active", Value: i.IsActive},
	}
}
