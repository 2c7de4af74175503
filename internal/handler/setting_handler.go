package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/service"
	"github.com/atlastile/cms-go-api/internal/utils"
)

// SettingHandler exposes typed site settings.
type SettingHandler struct {
	service service.SettingService
	logger  zerolog.Logger
}

// NewSettingHandler constructs the setting handler.
func NewSettingHandler(svc service.SettingService, logger zerolog.Logger) *SettingHandler {
	return &SettingHandler{
		service: svc,
		logger:  logger.With().Str("component", "setting_handler").Logger(),
	}
}

// Register mounts the admin setting routes.
func (h *SettingHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Put("", h.upsert)
	router.Get("/:slug", h.getBySlug)
	router.Delete("/:slug", h.delete)
}

// RegisterPublic mounts the public setting routes, limited to public entries.
func (h *SettingHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.listPublic)
}

func (h *SettingHandler) upsert(c *fiber.Ctx) error {
	var payload dto.UpsertSettingRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	setting, err := h.service.Upsert(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSettingValueInvalid):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(c, h.logger).Error().Err(err).Msg("setting upsert failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save setting")
		}
	}

	return utils.SendSuccess(c, "setting saved", setting)
}

func (h *SettingHandler) delete(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if err := h.service.Delete(c.UserContext(), auditRequest(c), slug); err != nil {
		if errors.Is(err, service.ErrSettingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "setting not found")
		}
		requestLogger(c, h.logger).Error().Err(err).Msg("setting delete failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete setting")
	}

	return utils.SendSuccess(c, "setting deleted", nil)
}

func (h *SettingHandler) getBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	setting, err := h.service.GetBySlug(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, service.ErrSettingNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "setting not found")
		}
		requestLogger(c, h.logger).Error().Err(err).Msg("setting lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load setting")
	}

	return utils.SendSuccess(c, "setting retrieved", setting)
}

func (h *SettingHandler) list(c *fiber.Ctx) error {
	return h.listWith(c, false)
}

func (h *SettingHandler) listPublic(c *fiber.Ctx) error {
	return h.listWith(c, true)
}

func (h *SettingHandler) listWith(c *fiber.Ctx, publicOnly bool) error {
	settings, err := h.service.List(c.UserContext(), publicOnly)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("setting listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list settings")
	}

	return utils.SendSuccess(c, "settings retrieved", settings)
}
