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

// ActivityHandler exposes the read-only activity log for administrators.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the activity log handler.
func NewActivityHandler(svc service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: svc,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register mounts the activity log routes. The log stays admin-only even
// though the surrounding /admin surface admits editors.
func (h *ActivityHandler) Register(router fiber.Router) {
	adminOnly := middleware.AuthOptions{Role: middleware.AuthRoleAdmin}
	router.Get("", middleware.WithAuth(h.list, adminOnly))
	router.Get("/:id", middleware.WithAuth(h.get, adminOnly))
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	var query dto.ActivityLogQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	logs, meta, err := h.service.List(c.UserContext(), query)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(c, h.logger).Error().Err(err).Msg("activity log listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity logs")
	}

	return utils.SendPaginated(c, "activity logs retrieved", logs, meta)
}

func (h *ActivityHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity log id")
	}

	record, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrActivityLogNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity log not found")
		}
		requestLogger(c, h.logger).Error().Err(err).Msg("activity log lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load activity log")
	}

	return utils.SendSuccess(c, "activity log retrieved", record)
}
