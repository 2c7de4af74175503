package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/middleware"
	"github.com/atlastile/cms-go-api/internal/service"
	"github.com/atlastile/cms-go-api/internal/utils"
)

// SubscriberHandler exposes newsletter signup and the admin subscriber listing.
type SubscriberHandler struct {
	service service.SubscriberService
	logger  zerolog.Logger
}

// NewSubscriberHandler constructs the subscriber handler.
func NewSubscriberHandler(svc service.SubscriberService, logger zerolog.Logger) *SubscriberHandler {
	return &SubscriberHandler{
		service: svc,
		logger:  logger.With().Str("component", "subscriber_handler").Logger(),
	}
}

// Register mounts the admin subscriber routes. The listing exposes subscriber
// emails, so it is held to admins only.
func (h *SubscriberHandler) Register(router fiber.Router) {
	router.Get("", middleware.WithAuth(h.list, middleware.AuthOptions{Role: middleware.AuthRoleAdmin}))
}

// RegisterPublic mounts the public signup routes.
func (h *SubscriberHandler) RegisterPublic(router fiber.Router) {
	router.Post("", h.subscribe)
	router.Post("/unsubscribe", h.unsubscribe)
}

func (h *SubscriberHandler) subscribe(c *fiber.Ctx) error {
	var payload dto.SubscribeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	subscriber, err := h.service.Subscribe(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAlreadySubscribed):
			return utils.SendError(c, fiber.StatusConflict, "email already subscribed")
		default:
			requestLogger(c, h.logger).Error().Err(err).Msg("signup failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to subscribe")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "subscribed", subscriber)
}

func (h *SubscriberHandler) unsubscribe(c *fiber.Ctx) error {
	var payload dto.SubscribeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Unsubscribe(c.UserContext(), auditRequest(c), payload.Email); err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSubscriberNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subscriber not found")
		default:
			requestLogger(c, h.logger).Error().Err(err).Msg("unsubscribe failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to unsubscribe")
		}
	}

	return utils.SendSuccess(c, "unsubscribed", nil)
}

func (h *SubscriberHandler) list(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)
	subscribers, err := h.service.List(c.UserContext(), activeOnly)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("subscriber listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list subscribers")
	}

	return utils.SendSuccess(c, "subscribers retrieved", subscribers)
}
