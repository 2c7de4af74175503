package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// ProductCategory groups products for navigation and filtering.
type ProductCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Lang      string    `gorm:"size:10;not null;default:en" json:"lang"`
	OrderNo   int       `gorm:"default:0" json:"order_no"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductCategory) TableName() string { return "product_categories" }

// AuditEntity implements audit.Snapshotter.
func (c *ProductCategory) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "product_category",
		Qualified: "models.ProductCategory",
		ID:        auditID(c.ID),
		Label:     fmt.Sprintf("%d: %s", c.ID, c.Name),
	}
}

// AuditFields implements audit.Snapshotter.
func (c *ProductCategory) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "slug", Value: c.Slug},
		{Name: "name", Value: c.Name},
		{Name: "lang", Value: c.Lang},
		{Name: "order_no", Value: c.OrderNo},
		{Name: "is_active", Value: c.IsActive},
	}
}

// Brochure is a downloadable document attached to products.
type Brochure struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Brochure) TableName() string { return "brochures" }

// AuditEntity implements audit.Snapshotter.
func (b *Brochure) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "brochure",
		Qualified: "models.Brochure",
		ID:        auditID(b.ID),
		Label:     fmt.Sprintf("%d: %s", b.ID, b.Title),
	}
}

// AuditFields implements audit.Snapshotter.
func (b *Brochure) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "title", Value: b.Title},
		{Name: "file_url", Value: b.FileURL},
		{Name: "size_bytes", Value: b.SizeBytes},
	}
}

// Product is a catalogue item with media, SEO metadata and an optional
// brochure attachment.
type Product struct {
	ID              uint                        `gorm:"primaryKey" json:"id"`
	Slug            string                      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	CategoryID      *uint                       `gorm:"index" json:"category_id"`
	Category        *ProductCategory            `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Name            string                      `gorm:"size:255;not null" json:"name"`
	Lang            string                      `gorm:"size:10;not null;default:en" json:"lang"`
	Description     string                      `gorm:"type:text" json:"description"`
	ProductType     string                      `gorm:"size:20" json:"product_type"`
	ImageURL        string                      `gorm:"size:512" json:"image_url"`
	Gallery         datatypes.JSONSlice[string] `gorm:"type:json" json:"gallery"`
	BrochureID      *uint                       `gorm:"index" json:"brochure_id"`
	Brochure        *Brochure                   `gorm:"constraint:OnDelete:SET NULL" json:"brochure,omitempty"`
	MetaTitle       string                      `gorm:"size:255" json:"meta_title"`
	MetaDescription string                      `gorm:"type:text" json:"meta_description"`
	MetaKeywords    string                      `gorm:"type:text" json:"meta_keywords"`
	IsActive        bool                        `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// AuditEntity implements audit.Snapshotter.
func (p *Product) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "product",
		Qualified: "models.Product",
		ID:        auditID(p.ID),
		Label:     fmt.Sprintf("%d: %s", p.ID, p.Name),
	}
}

// AuditFields implements audit.Snapshotter. Timestamps and relation objects
// are bookkeeping and stay out of the declared schema.
func (p *Product) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "slug", Value: p.Slug},
		{Name: "category_id", Value: p.CategoryID},
		{Name: "name", Value: p.Name},
		{Name: "lang", Value: p.Lang},
		{Name: "description", Value: p.Description},
		{Name: "product_type", Value: p.ProductType},
		{Name: "image_url", Value: p.ImageURL},
		{Name: "gallery", Value: []string(p.Gallery)},
		{Name: "brochure_id", Value: p.BrochureID},
		{Name: "meta_title", Value: p.MetaTitle},
		{Name: "meta_description", Value: p.MetaDescription},
		{Name: "meta_keywords", Value: p.MetaKeywords},
		{Name: "is_active", Value: p.IsActive},
	}
}
