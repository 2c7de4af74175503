package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/service"
	"github.com/atlastile/cms-go-api/internal/utils"
)

// CatalogHandler exposes product categories and brochures.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler constructs the catalog handler.
func NewCatalogHandler(svc service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger.With().Str("component", "catalog_handler").Logger(),
	}
}

// RegisterCategories mounts the admin category routes.
func (h *CatalogHandler) RegisterCategories(router fiber.Router) {
	router.Get("", h.listCategories)
	router.Post("", h.createCategory)
	router.Put("/:id", h.updateCategory)
	router.Delete("/:id", h.deleteCategory)
}

// RegisterBrochures mounts the admin brochure routes.
func (h *CatalogHandler) RegisterBrochures(router fiber.Router) {
	router.Get("", h.listBrochures)
	router.Post("", h.createBrochure)
	router.Delete("/:id", h.deleteBrochure)
}

// RegisterPublic mounts the read-only public catalog routes.
func (h *CatalogHandler) RegisterPublic(categories, brochures fiber.Router) {
	categories.Get("", h.listActiveCategories)
	brochures.Get("", h.listBrochures)
}

func (h *CatalogHandler) createCategory(c *fiber.Ctx) error {
	var payload dto.CreateProductCategoryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.service.CreateCategory(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create category")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "category created", category)
}

func (h *CatalogHandler) updateCategory(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid category id")
	}

	var payload dto.UpdateProductCategoryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.service.UpdateCategory(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update category")
	}

	return utils.SendSuccess(c, "category updated", category)
}

func (h *CatalogHandler) deleteCategory(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid category id")
	}

	if err := h.service.DeleteCategory(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete category")
	}

	return utils.SendSuccess(c, "category deleted", nil)
}

func (h *CatalogHandler) listCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext(), false)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("category listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list categories")
	}

	return utils.SendSuccess(c, "categories retrieved", categories)
}

func (h *CatalogHandler) listActiveCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext(), true)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("category listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list categories")
	}

	return utils.SendSuccess(c, "categories retrieved", categories)
}

func (h *CatalogHandler) createBrochure(c *fiber.Ctx) error {
	var payload dto.CreateBrochureRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	brochure, err := h.service.CreateBrochure(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create brochure")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "brochure created", brochure)
}

func (h *CatalogHandler) deleteBrochure(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid brochure id")
	}

	if err := h.service.DeleteBrochure(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete brochure")
	}

	return utils.SendSuccess(c, "brochure deleted", nil)
}

func (h *CatalogHandler) listBrochures(c *fiber.Ctx) error {
	brochures, err := h.service.ListBrochures(c.UserContext())
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("brochure listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list brochures")
	}

	return utils.SendSuccess(c, "brochures retrieved", brochures)
}

func (h *CatalogHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCategoryNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "category not found")
	case errors.Is(err, service.ErrBrochureNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "brochure not found")
	case errors.Is(err, service.ErrCategorySlugTaken):
		return utils.SendError(c, fiber.StatusConflict, "category slug already in use")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
