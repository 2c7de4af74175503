package dto

import (
	"time"

	"github.com/atlastile/cms-go-api/internal/models"
)

// UploadResponse is the serialized outcome of a media upload.
type UploadResponse struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUploadResponse converts an upload record into a DTO.
func NewUploadResponse(record models.UploadRecord) UploadResponse {
	return UploadResponse{
		ID:        record.ID,
		FileName:  record.FileName,
		URL:       record.URL,
		MimeType:  record.MimeType,
		SizeBytes: record.SizeBytes,
		Checksum:  record.Checksum,
		CreatedAt: record.CreatedAt,
	}
}

// NewUploadResponseSlice converts a slice of upload records.
func NewUploadResponseSlice(records []models.UploadRecord) []UploadResponse {
	responses := make([]UploadResponse, len(records))
	for i, record := range records {
		responses[i] = NewUploadResponse(record)
	}
	return responses
}
