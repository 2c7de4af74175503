package dto

import (
	"time"

	"github.com/atlastile/cms-go-api/internal/models"
)

// CreateProductCategoryRequest is the payload for creating a category.
type CreateProductCategoryRequest struct {
	Slug     string `json:"slug" validate:"required,min=2,max=255"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Lang     string `json:"lang" validate:"omitempty,bcp47_language_tag"`
	OrderNo  int    `json:"order_no" validate:"omitempty,gte=0"`
	IsActive *bool  `json:"is_active"`
}

// UpdateProductCategoryRequest is the partial-update payload for a category.
type UpdateProductCategoryRequest struct {
	Slug     *string `json:"slug" validate:"omitempty,min=2,max=255"`
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Lang     *string `json:"lang" validate:"omitempty,bcp47_language_tag"`
	OrderNo  *int    `json:"order_no" validate:"omitempty,gte=0"`
	IsActive *bool   `json:"is_active"`
}

// ProductCategoryResponse is the serialized category.
type ProductCategoryResponse struct {
	ID        uint      `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Lang      string    `json:"lang"`
	OrderNo   int       `json:"order_no"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProductCategoryResponse converts a category model into a DTO.
func NewProductCategoryResponse(category models.ProductCategory) ProductCategoryResponse {
	return ProductCategoryResponse{
		ID:        category.ID,
		Slug:      category.Slug,
		Name:      category.Name,
		Lang:      category.Lang,
		OrderNo:   category.OrderNo,
		IsActive:  category.IsActive,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// NewProductCategoryResponseSlice converts a slice of category models.
func NewProductCategoryResponseSlice(categories []models.ProductCategory) []ProductCategoryResponse {
	responses := make([]ProductCategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = NewProductCategoryResponse(category)
	}
	return responses
}

// ToModel maps a create request onto a fresh category model.
func (r CreateProductCategoryRequest) ToModel() models.ProductCategory {
	category := models.ProductCategory{
		Slug:     r.Slug,
		Name:     r.Name,
		Lang:     r.Lang,
		OrderNo:  r.OrderNo,
		IsActive: true,
	}
	if category.Lang == "" {
		category.Lang = "en"
	}
	if r.IsActive != nil {
		category.IsActive = *r.IsActive
	}
	return category
}

// Apply overlays non-nil update fields onto an existing category model.
func (r UpdateProductCategoryRequest) Apply(category *models.ProductCategory) {
	if r.Slug != nil {
		category.Slug = *r.Slug
	}
	if r.Name != nil {
		category.Name = *r.Name
	}
	if r.Lang != nil {
		category.Lang = *r.Lang
	}
	if r.OrderNo != nil {
		category.OrderNo = *r.OrderNo
	}
	if r.IsActive != nil {
		category.IsActive = *r.IsActive
	}
}

// CreateBrochureRequest registers an already-uploaded brochure document.
type CreateBrochureRequest struct {
	Title     string `json:"title" validate:"required,min=2,max=255"`
	FileURL   string `json:"file_url" validate:"required,url,max=512"`
	SizeBytes int64  `json:"size_bytes" validate:"omitempty,gte=0"`
}

// BrochureResponse is the serialized brochure.
type BrochureResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBrochureResponse converts a brochure model into a DTO.
func NewBrochureResponse(brochure models.Brochure) BrochureResponse {
	return BrochureResponse{
		ID:        brochure.ID,
		Title:     brochure.Title,
		FileURL:   brochure.FileURL,
		SizeBytes: brochure.SizeBytes,
		CreatedAt: brochure.CreatedAt,
	}
}

// NewBrochureResponseSlice converts a slice of brochure models.
func NewBrochureResponseSlice(brochures []models.Brochure) []BrochureResponse {
	responses := make([]BrochureResponse, len(brochures))
	for i, brochure := range brochures {
		responses[i] = NewBrochureResponse(brochure)
	}
	return responses
}
