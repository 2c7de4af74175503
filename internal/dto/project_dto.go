package dto

import (
	"time"

	"github.com/atlastile/cms-go-api/internal/models"
)

// CreateProjectRequest is the payload for creating a portfolio project.
type CreateProjectRequest struct {
	Slug        string   `json:"slug" validate:"required,min=2,max=255"`
	Title       string   `json:"title" validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"omitempty,max=20000"`
	Location    string   `json:"location" validate:"omitempty,max=255"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url,max=512"`
	Gallery     []string `json:"gallery" validate:"omitempty,max=20,dive,url"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateProjectRequest is the partial-update payload for a project.
type UpdateProjectRequest struct {
	Slug        *string  `json:"slug" validate:"omitempty,min=2,max=255"`
	Title       *string  `json:"title" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=20000"`
	Location    *string  `json:"location" validate:"omitempty,max=255"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url,max=512"`
	Gallery     []string `json:"gallery" validate:"omitempty,max=20,dive,url"`
	IsActive    *bool    `json:"is_active"`
}

// ProjectResponse is the serialized portfolio project.
type ProjectResponse struct {
	ID          uint      `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url"`
	Gallery     []string  `json:"gallery"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProjectResponse converts a project model into a DTO.
func NewProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Slug:        project.Slug,
		Title:       project.Title,
		Description: project.Description,
		Location:    project.Location,
		ImageURL:    project.ImageURL,
		Gallery:     []string(project.Gallery),
		IsActive:    project.IsActive,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// NewProjectResponseSlice converts a slice of project models.
func NewProjectResponseSlice(projects []models.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		responses[i] = NewProjectResponse(project)
	}
	return responses
}
