package dto

import (
	"time"

	"github.com/atlastile/cms-go-api/internal/models"
)

// CreateMenuRequest is the payload for creating a navigation menu.
type CreateMenuRequest struct {
	Slug     string `json:"slug" validate:"required,min=2,max=128"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Lang     string `json:"lang" validate:"omitempty,bcp47_language_tag"`
	IsActive *bool  `json:"is_active"`
}

// UpdateMenuRequest is the partial-update payload for a menu.
type UpdateMenuRequest struct {
	Slug     *string `json:"slug" validate:"omitempty,min=2,max=128"`
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Lang     *string `json:"lang" validate:"omitempty,bcp47_language_tag"`
	IsActive *bool   `json:"is_active"`
}

// CreateMenuItemRequest is the payload for adding an entry to a menu.
type CreateMenuItemRequest struct {
	ParentID *uint  `json:"parent_id" validate:"omitempty,gt=0"`
	Title    string `json:"title" validate:"required,min=1,max=255"`
	URL      string `json:"url" validate:"omitempty,max=512"`
	OrderNo  int    `json:"order_no" validate:"omitempty,gte=0"`
	IsActive *bool  `json:"is_active"`
}

// UpdateMenuItemRequest is the partial-update payload for a menu item.
type UpdateMenuItemRequest struct {
	ParentID *uint   `json:"parent_id" validate:"omitempty,gt=0"`
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	URL      *string `json:"url" validate:"omitempty,max=512"`
	OrderNo  *int    `json:"order_no" validate:"omitempty,gte=0"`
	IsActive *bool   `json:"is_active"`
}

// MenuItemResponse is the serialized menu entry with nested children.
type MenuItemResponse struct {
	ID       uint               `json:"id"`
	MenuID   uint               `json:"menu_id"`
	ParentID *uint              `json:"parent_id"`
	Title    string             `json:"title"`
	URL      string             `json:"url"`
	OrderNo  int                `json:"order_no"`
	IsActive bool               `json:"is_active"`
	Children []MenuItemResponse `json:"children,omitempty"`
}

// NewMenuItemResponse converts a menu item model, recursing into children.
func NewMenuItemResponse(item models.MenuItem) MenuItemResponse {
	resp := MenuItemResponse{
		ID:       item.ID,
		MenuID:   item.MenuID,
		ParentID: item.ParentID,
		Title:    item.Title,
		URL:      item.URL,
		OrderNo:  item.OrderNo,
		IsActive: item.IsActive,
	}
	for _, child := range item.Children {
		resp.Children = append(resp.Children, NewMenuItemResponse(child))
	}
	return resp
}

// NewMenuItemResponseSlice converts a slice of menu item models.
func NewMenuItemResponseSlice(items []models.MenuItem) []MenuItemResponse {
	responses := make([]MenuItemResponse, len(items))
	for i, item := range items {
		responses[i] = NewMenuItemResponse(item)
	}
	return responses
}

// MenuResponse is the serialized menu, optionally with its item tree.
type MenuResponse struct {
	ID        uint               `json:"id"`
	Slug      string             `json:"slug"`
	Name      string             `json:"name"`
	Lang      string             `json:"lang"`
	IsActive  bool               `json:"is_active"`
	Items     []MenuItemResponse `json:"items,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewMenuResponse converts a menu model into a DTO.
func NewMenuResponse(menu models.Menu) MenuResponse {
	resp := MenuResponse{
		ID:        menu.ID,
		Slug:      menu.Slug,
		Name:      menu.Name,
		Lang:      menu.Lang,
		IsActive:  menu.IsActive,
		CreatedAt: menu.CreatedAt,
		UpdatedAt: menu.UpdatedAt,
	}
	if len(menu.Items) > 0 {
		resp.Items = NewMenuItemResponseSlice(menu.Items)
	}
	return resp
}

// NewMenuResponseSlice converts a slice of menu models.
func NewMenuResponseSlice(menus []models.Menu) []MenuResponse {
	responses := make([]MenuResponse, len(menus))
	for i, menu := range menus {
		responses[i] = NewMenuResponse(menu)
	}
	return responses
}
