package models

import (
	"fmt"
	"time"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// Page is a free-form CMS page addressed by slug.
type Page struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Slug            string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Lang            string    `gorm:"size:10;not null;default:en" json:"lang"`
	Body            string    `gorm:"type:text" json:"body"`
	MetaTitle       string    `gorm:"size:255" json:"meta_title"`
	MetaDescription string    `gorm:"type:text" json:"meta_description"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Page) TableName() string { return "pages" }

// AuditEntity implements audit.Snapshotter.
func (p *Page) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "page",
		Qualified: "models.Page",
		ID:        auditID(p.ID),
		Label:     fmt.Sprintf("%d: %s", p.ID, p.Title),
	}
}

// AuditFields implements audit.Snapshotter.
func (p *Page) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "slug", Value: p.Slug},
		{Name: "title", Value: p.Title},
		{Name: "lang", Value: p.Lang},
		{Name: "body", Value: p.Body},
		{Name: "meta_title", Value: p.MetaTitle},
		{Name: "meta_description", Value: p.MetaDescription},
		{Name: "is_active", Value: p.IsActive},
	}
}

// Banner is a homepage hero slot with manual ordering.
type Banner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Subtitle  string    `gorm:"size:255" json:"subtitle"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	LinkURL   string    `gorm:"size:255" json:"link_url"`
	OrderNo   int       `gorm:"default:0" json:"order_no"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Banner) TableName() string { return "banners" }

// AuditEntity implements audit.Snapshotter.
func (b *Banner) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "banner",
		Qualified: "models.Banner",
		ID:        auditID(b.ID),
		Label:     fmt.Sprintf("%d: %s", b.ID, b.Title),
	}
}

// AuditFields implements audit.Snapshotter.
func (b *Banner) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "title", Value: b.Title},
		{Name: "subtitle", Value: b.Subtitle},
		{Name: "image_url", Value: b.ImageURL},
		{Name: "link_url", Value: b.LinkURL},
		{Name: "order_no", Value: b.OrderNo},
		{Name: "is_active", Value: b.IsActive},
	}
}

// Article is a published news or blog entry.
type Article struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Lang        string     `gorm:"size:10;not null;default:en" json:"lang"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Body        string     `gorm:"type:text" json:"body"`
	CoverURL    string     `gorm:"size:512" json:"cover_url"`
	IsPublished bool       `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Article) TableName() string { return "articles" }

// AuditEntity implements audit.Snapshotter.
func (a *Article) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "article",
		Qualified: "models.Article",
		ID:        auditID(a.ID),
		Label:     fmt.Sprintf("%d: %s", a.ID, a.Title),
	}
}

// AuditFields implements audit.Snapshotter.
func (a *Article) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "slug", Value: a.Slug},
		{Name: "title", Value: a.Title},
		{Name: "lang", Value: a.Lang},
		{Name: "summary", Value: a.Summary},
		{Name: "body", Value: a.Body},
		{Name: "cover_url", Value: a.CoverURL},
		{Name: "is_published", Value: a.IsPublished},
	}
}
