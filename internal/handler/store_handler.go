package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/service"
	"github.com/atlastile/cms-go-api/internal/utils"
)

// StoreHandler exposes the store locator and its admin management routes.
type StoreHandler struct {
	service service.StoreService
	logger  zerolog.Logger
}

// NewStoreHandler constructs the store handler.
func NewStoreHandler(svc service.StoreService, logger zerolog.Logger) *StoreHandler {
	return &StoreHandler{
		service: svc,
		logger:  logger.With().Str("component", "store_handler").Logger(),
	}
}

// Register mounts the admin store routes.
func (h *StoreHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

// RegisterPublic mounts the public store locator.
func (h *StoreHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
}

func (h *StoreHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateStoreRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	store, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create store")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "store created", store)
}

func (h *StoreHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid store id")
	}

	var payload dto.UpdateStoreRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	store, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update store")
	}

	return utils.SendSuccess(c, "store updated", store)
}

func (h *StoreHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid store id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete store")
	}

	return utils.SendSuccess(c, "store deleted", nil)
}

func (h *StoreHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid store id")
	}

	store, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load store")
	}

	return utils.SendSuccess(c, "store retrieved", store)
}

func (h *StoreHandler) list(c *fiber.Ctx) error {
	query := service.StoreListQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
		Search:   c.Query("search"),
		City:     c.Query("city"),
	}

	stores, meta, err := h.service.List(c.UserContext(), query)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("store listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list stores")
	}

	return utils.SendPaginated(c, "stores retrieved", stores, meta)
}

func (h *StoreHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStoreNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "store not found")
	case errors.Is(err, service.ErrStoreEmailTaken):
		return utils.SendError(c, fiber.StatusConflict, "store email already in use")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
