package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/atlastile/cms-go-api/internal/models"
)

// CreateProductRequest is the payload for creating a catalogue product.
type CreateProductRequest struct {
	Slug            string   `json:"slug" validate:"required,min=2,max=255"`
	CategoryID      *uint    `json:"category_id" validate:"omitempty,gt=0"`
	Name            string   `json:"name" validate:"required,min=2,max=255"`
	Lang            string   `json:"lang" validate:"omitempty,bcp47_language_tag"`
	Description     string   `json:"description" validate:"omitempty,max=10000"`
	ProductType     string   `json:"product_type" validate:"omitempty,max=20"`
	ImageURL        string   `json:"image_url" validate:"omitempty,url,max=512"`
	Gallery         []string `json:"gallery" validate:"omitempty,dive,url"`
	BrochureID      *uint    `json:"brochure_id" validate:"omitempty,gt=0"`
	MetaTitle       string   `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription string   `json:"meta_description" validate:"omitempty,max=2000"`
	MetaKeywords    string   `json:"meta_keywords" validate:"omitempty,max=2000"`
	IsActive        *bool    `json:"is_active"`
}

// UpdateProductRequest is the partial-update payload; nil fields are left
// untouched.
type UpdateProductRequest struct {
	Slug            *string  `json:"slug" validate:"omitempty,min=2,max=255"`
	CategoryID      *uint    `json:"category_id" validate:"omitempty,gt=0"`
	Name            *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Lang            *string  `json:"lang" validate:"omitempty,bcp47_language_tag"`
	Description     *string  `json:"description" validate:"omitempty,max=10000"`
	ProductType     *string  `json:"product_type" validate:"omitempty,max=20"`
	ImageURL        *string  `json:"image_url" validate:"omitempty,url,max=512"`
	Gallery         []string `json:"gallery" validate:"omitempty,dive,url"`
	BrochureID      *uint    `json:"brochure_id" validate:"omitempty,gt=0"`
	MetaTitle       *string  `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription *string  `json:"meta_description" validate:"omitempty,max=2000"`
	MetaKeywords    *string  `json:"meta_keywords" validate:"omitempty,max=2000"`
	IsActive        *bool    `json:"is_active"`
}

// ImportProductsRequest is the bulk-import payload; items are processed one
// by one and the outcome is summarized in a single activity record.
type ImportProductsRequest struct {
	Items []CreateProductRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

// ImportProductsResponse summarizes a bulk import run.
type ImportProductsResponse struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors,omitempty"`
}

// ProductResponse is the serialized catalogue product.
type ProductResponse struct {
	ID              uint                     `json:"id"`
	Slug            string                   `json:"slug"`
	CategoryID      *uint                    `json:"category_id"`
	Category        *ProductCategoryResponse `json:"category,omitempty"`
	Name            string                   `json:"name"`
	Lang            string                   `json:"lang"`
	Description     string                   `json:"description"`
	ProductType     string                   `json:"product_type"`
	ImageURL        string                   `json:"image_url"`
	Gallery         []string                 `json:"gallery"`
	BrochureID      *uint                    `json:"brochure_id"`
	Brochure        *BrochureResponse        `json:"brochure,omitempty"`
	MetaTitle       string                   `json:"meta_title"`
	MetaDescription string                   `json:"meta_description"`
	MetaKeywords    string                   `json:"meta_keywords"`
	IsActive        bool                     `json:"is_active"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// NewProductResponse converts a product model into a DTO.
func NewProductResponse(product models.Product) ProductResponse {
	resp := ProductResponse{
		ID:              product.ID,
		Slug:            product.Slug,
		CategoryID:      product.CategoryID,
		Name:            product.Name,
		Lang:            product.Lang,
		Description:     product.Description,
		ProductType:     product.ProductType,
		ImageURL:        product.ImageURL,
		Gallery:         []string(product.Gallery),
		BrochureID:      product.BrochureID,
		MetaTitle:       product.MetaTitle,
		MetaDescription: product.MetaDescription,
		MetaKeywords:    product.MetaKeywords,
		IsActive:        product.IsActive,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if product.Category != nil {
		category := NewProductCategoryResponse(*product.Category)
		resp.Category = &category
	}
	if product.Brochure != nil {
		brochure := NewBrochureResponse(*product.Brochure)
		resp.Brochure = &brochure
	}
	return resp
}

// NewProductResponseSlice converts a slice of product models.
func NewProductResponseSlice(products []models.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = NewProductResponse(product)
	}
	return responses
}

// ToModel maps a create request onto a fresh product model.
func (r CreateProductRequest) ToModel() models.Product {
	product := models.Product{
		Slug:            r.Slug,
		CategoryID:      r.CategoryID,
		Name:            r.Name,
		Lang:            r.Lang,
		Description:     r.Description,
		ProductType:     r.ProductType,
		ImageURL:        r.ImageURL,
		Gallery:         datatypes.NewJSONSlice(r.Gallery),
		BrochureID:      r.BrochureID,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		MetaKeywords:    r.MetaKeywords,
		IsActive:        true,
	}
	if product.Lang == "" {
		product.Lang = "en"
	}
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
	return product
}

// Apply overlays non-nil update fields onto an existing product model.
func (r UpdateProductRequest) Apply(product *models.Product) {
	if r.Slug != nil {
		product.Slug = *r.Slug
	}
	if r.CategoryID != nil {
		product.CategoryID = r.CategoryID
	}
	if r.Name != nil {
		product.Name = *r.Name
	}
	if r.Lang != nil {
		product.Lang = *r.Lang
	}
	if r.Description != nil {
		product.Description = *r.Description
	}
	if r.ProductType != nil {
		product.ProductType = *r.ProductType
	}
	if r.ImageURL != nil {
		product.ImageURL = *r.ImageURL
	}
	if r.Gallery != nil {
		product.Gallery = datatypes.NewJSONSlice(r.Gallery)
	}
	if r.BrochureID != nil {
		product.BrochureID = r.BrochureID
	}
	if r.MetaTitle != nil {
		product.MetaTitle = *r.MetaTitle
	}
	if r.MetaDescription != nil {
		product.MetaDescription = *r.MetaDescription
	}
	if r.MetaKeywords != nil {
		product.MetaKeywords = *r.MetaKeywords
	}
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
}
