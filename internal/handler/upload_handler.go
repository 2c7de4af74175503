package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/service"
	"github.com/atlastile/cms-go-api/internal/utils"
)

// UploadHandler exposes media uploads for the admin surface.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the upload handler.
func NewUploadHandler(svc service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: svc,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register mounts the admin upload routes.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.upload)
}

func (h *UploadHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file field is required")
	}

	result, err := h.service.Upload(c.UserContext(), auditRequest(c), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadMissing):
			return utils.SendError(c, fiber.StatusBadRequest, "file field is required")
		case errors.Is(err, service.ErrUploadTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "file type is not allowed")
		default:
			requestLogger(c, h.logger).Error().Err(err).Msg("upload failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to store upload")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "file uploaded", result)
}

func (h *UploadHandler) list(c *fiber.Ctx) error {
	limit := parseQueryInt(c, "limit", 50)
	uploads, err := h.service.List(c.UserContext(), limit)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("upload listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list uploads")
	}

	return utils.SendSuccess(c, "uploads retrieved", uploads)
}
