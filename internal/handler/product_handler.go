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

// ProductHandler exposes the product catalogue over the admin and public surfaces.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler constructs the product handler.
func NewProductHandler(svc service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger.With().Str("component", "product_handler").Logger(),
	}
}

// Register mounts the admin product routes.
func (h *ProductHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Post("/import", h.importBatch)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

// RegisterPublic mounts the read-only public product routes.
func (h *ProductHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.listPublic)
	router.Get("/:slug", h.getBySlug)
}

func (h *ProductHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateProductRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create product")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "product created", product)
}

func (h *ProductHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid product id")
	}

	var payload dto.UpdateProductRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update product")
	}

	return utils.SendSuccess(c, "product updated", product)
}

func (h *ProductHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete product")
	}

	return utils.SendSuccess(c, "product deleted", nil)
}

func (h *ProductHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid product id")
	}

	product, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load product")
	}

	return utils.SendSuccess(c, "product retrieved", product)
}

func (h *ProductHandler) getBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	product, err := h.service.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return h.mapError(c, err, "failed to load product")
	}

	return utils.SendSuccess(c, "product retrieved", product)
}

func (h *ProductHandler) list(c *fiber.Ctx) error {
	return h.listWith(c, false)
}

func (h *ProductHandler) listPublic(c *fiber.Ctx) error {
	return h.listWith(c, true)
}

func (h *ProductHandler) listWith(c *fiber.Ctx, activeOnly bool) error {
	query := service.ProductListQuery{
		Page:       parseQueryInt(c, "page", 1),
		PageSize:   parseQueryInt(c, "page_size", 20),
		Search:     strings.TrimSpace(c.Query("search")),
		Lang:       strings.TrimSpace(c.Query("lang")),
		ActiveOnly: activeOnly,
	}
	if categoryID := parseQueryInt(c, "category_id", 0); categoryID > 0 {
		id := uint(categoryID)
		query.CategoryID = &id
	}

	products, meta, err := h.service.List(c.UserContext(), query)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("product listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list products")
	}

	return utils.SendPaginated(c, "products retrieved", products, meta)
}

func (h *ProductHandler) importBatch(c *fiber.Ctx) error {
	var payload dto.ImportProductsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Import(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(c, h.logger).Error().Err(err).Msg("product import failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to import products")
	}

	return utils.SendSuccess(c, "product import finished", result)
}

func (h *ProductHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProductNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, "category not found")
	case errors.Is(err, service.ErrBrochureNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, "brochure not found")
	case errors.Is(err, service.ErrProductSlugTaken):
		return utils.SendError(c, fiber.StatusConflict, "product slug already in use")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
