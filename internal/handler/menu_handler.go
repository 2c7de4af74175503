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

// MenuHandler exposes navigation menus and their items.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler constructs the menu handler.
func NewMenuHandler(svc service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: svc,
		logger:  logger.With().Str("component", "menu_handler").Logger(),
	}
}

// Register mounts the admin menu routes.
func (h *MenuHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/items", h.createItem)
}

// RegisterItems mounts the admin menu item routes.
func (h *MenuHandler) RegisterItems(router fiber.Router) {
	router.Put("/:id", h.updateItem)
	router.Delete("/:id", h.deleteItem)
}

// RegisterPublic mounts the public menu tree route.
func (h *MenuHandler) RegisterPublic(router fiber.Router) {
	router.Get("/:slug/tree", h.tree)
}

func (h *MenuHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateMenuRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	menu, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create menu")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "menu created", menu)
}

func (h *MenuHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid menu id")
	}

	var payload dto.UpdateMenuRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	menu, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update menu")
	}

	return utils.SendSuccess(c, "menu updated", menu)
}

func (h *MenuHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid menu id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete menu")
	}

	return utils.SendSuccess(c, "menu deleted", nil)
}

func (h *MenuHandler) list(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)
	menus, err := h.service.List(c.UserContext(), activeOnly)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("menu listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list menus")
	}

	return utils.SendSuccess(c, "menus retrieved", menus)
}

func (h *MenuHandler) tree(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	menu, err := h.service.Tree(c.UserContext(), slug)
	if err != nil {
		return h.mapError(c, err, "failed to load menu tree")
	}

	return utils.SendSuccess(c, "menu tree retrieved", menu)
}

func (h *MenuHandler) createItem(c *fiber.Ctx) error {
	menuID, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid menu id")
	}

	var payload dto.CreateMenuItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.CreateItem(c.UserContext(), auditRequest(c), menuID, payload)
	if err != nil {
		return h.mapError(c, err, "failed to create menu item")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "menu item created", item)
}

func (h *MenuHandler) updateItem(c *fiber.Ctx) error {
	itemID, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid menu item id")
	}

	var payload dto.UpdateMenuItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.UpdateItem(c.UserContext(), auditRequest(c), itemID, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update menu item")
	}

	return utils.SendSuccess(c, "menu item updated", item)
}

func (h *MenuHandler) deleteItem(c *fiber.Ctx) error {
	itemID, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid menu item id")
	}

	if err := h.service.DeleteItem(c.UserContext(), auditRequest(c), itemID); err != nil {
		return h.mapError(c, err, "failed to delete menu item")
	}

	return utils.SendSuccess(c, "menu item deleted", nil)
}

func (h *MenuHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMenuNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "menu not found")
	case errors.Is(err, service.ErrMenuItemNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "menu item not found")
	case errors.Is(err, service.ErrMenuSlugTaken):
		return utils.SendError(c, fiber.StatusConflict, "menu slug already in use")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
