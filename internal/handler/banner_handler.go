package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/service"
	"github.com/atlastile/cms-go-api/internal/utils"
)

// BannerHandler exposes homepage banners.
type BannerHandler struct {
	service service.BannerService
	logger  zerolog.Logger
}

// NewBannerHandler constructs the banner handler.
func NewBannerHandler(svc service.BannerService, logger zerolog.Logger) *BannerHandler {
	return &BannerHandler{
		service: svc,
		logger:  logger.With().Str("component", "banner_handler").Logger(),
	}
}

// Register mounts the admin banner routes.
func (h *BannerHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

// RegisterPublic mounts the public banner routes.
func (h *BannerHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.listActive)
}

func (h *BannerHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateBannerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	banner, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create banner")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "banner created", banner)
}

func (h *BannerHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid banner id")
	}

	var payload dto.UpdateBannerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	banner, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update banner")
	}

	return utils.SendSuccess(c, "banner updated", banner)
}

func (h *BannerHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid banner id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete banner")
	}

	return utils.SendSuccess(c, "banner deleted", nil)
}

func (h *BannerHandler) list(c *fiber.Ctx) error {
	banners, err := h.service.List(c.UserContext(), false)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("banner listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list banners")
	}

	return utils.SendSuccess(c, "banners retrieved", banners)
}

func (h *BannerHandler) listActive(c *fiber.Ctx) error {
	banners, err := h.service.List(c.UserContext(), true)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("banner listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list banners")
	}

	return utils.SendSuccess(c, "banners retrieved", banners)
}

func (h *BannerHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrBannerNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "banner not found")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
