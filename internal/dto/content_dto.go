package dto

import (
	"time"

	"github.com/atlastile/cms-go-api/internal/models"
)

// CreatePageRequest is the payload for creating a CMS page.
type CreatePageRequest struct {
	Slug            string `json:"slug" validate:"required,min=2,max=255"`
	Title           string `json:"title" validate:"required,min=2,max=255"`
	Lang            string `json:"lang" validate:"omitempty,bcp47_language_tag"`
	Body            string `json:"body" validate:"omitempty,max=200000"`
	MetaTitle       string `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription string `json:"meta_description" validate:"omitempty,max=2000"`
	IsActive        *bool  `json:"is_active"`
}

// UpdatePageRequest is the partial-update payload for a page.
type UpdatePageRequest struct {
	Slug            *string `json:"slug" validate:"omitempty,min=2,max=255"`
	Title           *string `json:"title" validate:"omitempty,min=2,max=255"`
	Lang            *string `json:"lang" validate:"omitempty,bcp47_language_tag"`
	Body            *string `json:"body" validate:"omitempty,max=200000"`
	MetaTitle       *string `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription *string `json:"meta_description" validate:"omitempty,max=2000"`
	IsActive        *bool   `json:"is_active"`
}

// PageResponse is the serialized CMS page.
type PageResponse struct {
	ID              uint      `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Lang            string    `json:"lang"`
	Body            string    `json:"body"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewPageResponse converts a page model into a DTO.
func NewPageResponse(page models.Page) PageResponse {
	return PageResponse{
		ID:              page.ID,
		Slug:            page.Slug,
		Title:           page.Title,
		Lang:            page.Lang,
		Body:            page.Body,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		IsActive:        page.IsActive,
		CreatedAt:       page.CreatedAt,
		UpdatedAt:       page.UpdatedAt,
	}
}

// NewPageResponseSlice converts a slice of page models.
func NewPageResponseSlice(pages []models.Page) []PageResponse {
	responses := make([]PageResponse, len(pages))
	for i, page := range pages {
		responses[i] = NewPageResponse(page)
	}
	return responses
}

// CreateBannerRequest is the payload for creating a homepage banner.
type CreateBannerRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Subtitle string `json:"subtitle" validate:"omitempty,max=255"`
	ImageURL string `json:"image_url" validate:"required,url,max=512"`
	LinkURL  string `json:"link_url" validate:"omitempty,max=255"`
	OrderNo  int    `json:"order_no" validate:"omitempty,gte=0"`
	IsActive *bool  `json:"is_active"`
}

// UpdateBannerRequest is the partial-update payload for a banner.
type UpdateBannerRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	Subtitle *string `json:"subtitle" validate:"omitempty,max=255"`
	ImageURL *string `json:"image_url" validate:"omitempty,url,max=512"`
	LinkURL  *string `json:"link_url" validate:"omitempty,max=255"`
	OrderNo  *int    `json:"order_no" validate:"omitempty,gte=0"`
	IsActive *bool   `json:"is_active"`
}

// BannerResponse is the serialized banner.
type BannerResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	OrderNo   int       `json:"order_no"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBannerResponse converts a banner model into a DTO.
func NewBannerResponse(banner models.Banner) BannerResponse {
	return BannerResponse{
		ID:        banner.ID,
		Title:     banner.Title,
		Subtitle:  banner.Subtitle,
		ImageURL:  banner.ImageURL,
		LinkURL:   banner.LinkURL,
		OrderNo:   banner.OrderNo,
		IsActive:  banner.IsActive,
		CreatedAt: banner.CreatedAt,
		UpdatedAt: banner.UpdatedAt,
	}
}

// NewBannerResponseSlice converts a slice of banner models.
func NewBannerResponseSlice(banners []models.Banner) []BannerResponse {
	responses := make([]BannerResponse, len(banners))
	for i, banner := range banners {
		responses[i] = NewBannerResponse(banner)
	}
	return responses
}

// CreateArticleRequest is the payload for creating an article. Body HTML is
// sanitized server-side before storage.
type CreateArticleRequest struct {
	Slug     string `json:"slug" validate:"required,min=2,max=255"`
	Title    string `json:"title" validate:"required,min=2,max=255"`
	Lang     string `json:"lang" validate:"omitempty,bcp47_language_tag"`
	Summary  string `json:"summary" validate:"omitempty,max=2000"`
	Body     string `json:"body" validate:"omitempty,max=200000"`
	CoverURL string `json:"cover_url" validate:"omitempty,url,max=512"`
}

// UpdateArticleRequest is the partial-update payload for an article.
type UpdateArticleRequest struct {
	Slug     *string `json:"slug" validate:"omitempty,min=2,max=255"`
	Title    *string `json:"title" validate:"omitempty,min=2,max=255"`
	Lang     *string `json:"lang" validate:"omitempty,bcp47_language_tag"`
	Summary  *string `json:"summary" validate:"omitempty,max=2000"`
	Body     *string `json:"body" validate:"omitempty,max=200000"`
	CoverURL *string `json:"cover_url" validate:"omitempty,url,max=512"`
}

// ArticleResponse is the serialized article.
type ArticleResponse struct {
	ID          uint       `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Lang        string     `json:"lang"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	CoverURL    string     `json:"cover_url"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewArticleResponse converts an article model into a DTO.
func NewArticleResponse(article models.Article) ArticleResponse {
	return ArticleResponse{
		ID:          article.ID,
		Slug:        article.Slug,
		Title:       article.Title,
		Lang:        article.Lang,
		Summary:     article.Summary,
		Body:        article.Body,
		CoverURL:    article.CoverURL,
		IsPublished: article.IsPublished,
		PublishedAt: article.PublishedAt,
		CreatedAt:   article.CreatedAt,
		UpdatedAt:   article.UpdatedAt,
	}
}

// NewArticleResponseSlice converts a slice of article models.
func NewArticleResponseSlice(articles []models.Article) []ArticleResponse {
	responses := make([]ArticleResponse, len(articles))
	for i, article := range articles {
		responses[i] = NewArticleResponse(article)
	}
	return responses
}
