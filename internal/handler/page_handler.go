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

// PageHandler exposes static site pages.
type PageHandler struct {
	service service.PageService
	logger  zerolog.Logger
}

// NewPageHandler constructs the page handler.
func NewPageHandler(svc service.PageService, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		service: svc,
		logger:  logger.With().Str("component", "page_handler").Logger(),
	}
}

// Register mounts the admin page routes.
func (h *PageHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

// RegisterPublic mounts the public page routes.
func (h *PageHandler) RegisterPublic(router fiber.Router) {
	router.Get("/:slug", h.getBySlug)
}

func (h *PageHandler) create(c *fiber.Ctx) error {
	var payload dto.CreatePageRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	page, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create page")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "page created", page)
}

func (h *PageHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page id")
	}

	var payload dto.UpdatePageRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	page, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update page")
	}

	return utils.SendSuccess(c, "page updated", page)
}

func (h *PageHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete page")
	}

	return utils.SendSuccess(c, "page deleted", nil)
}

func (h *PageHandler) list(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)
	pages, err := h.service.List(c.UserContext(), activeOnly)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("page listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list pages")
	}

	return utils.SendSuccess(c, "pages retrieved", pages)
}

func (h *PageHandler) getBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	page, err := h.service.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return h.mapError(c, err, "failed to load page")
	}

	return utils.SendSuccess(c, "page retrieved", page)
}

func (h *PageHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPageNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "page not found")
	case errors.Is(err, service.ErrPageSlugTaken):
		return utils.SendError(c, fiber.StatusConflict, "page slug already in use")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
