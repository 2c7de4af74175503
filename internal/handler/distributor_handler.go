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

// DistributorHandler exposes sales partner management and the public inquiry form.
type DistributorHandler struct {
	service service.DistributorService
	logger  zerolog.Logger
}

// NewDistributorHandler constructs the distributor handler.
func NewDistributorHandler(svc service.DistributorService, logger zerolog.Logger) *DistributorHandler {
	return &DistributorHandler{
		service: svc,
		logger:  logger.With().Str("component", "distributor_handler").Logger(),
	}
}

// Register mounts the admin distributor routes.
func (h *DistributorHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

// RegisterPublic mounts the public distributor routes.
func (h *DistributorHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.listActive)
	router.Post("/inquiries", h.submitInquiry)
}

func (h *DistributorHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateDistributorRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	distributor, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create distributor")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "distributor created", distributor)
}

func (h *DistributorHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid distributor id")
	}

	var payload dto.UpdateDistributorRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	distributor, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update distributor")
	}

	return utils.SendSuccess(c, "distributor updated", distributor)
}

func (h *DistributorHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid distributor id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete distributor")
	}

	return utils.SendSuccess(c, "distributor deleted", nil)
}

func (h *DistributorHandler) list(c *fiber.Ctx) error {
	return h.listWith(c, false)
}

func (h *DistributorHandler) listActive(c *fiber.Ctx) error {
	return h.listWith(c, true)
}

func (h *DistributorHandler) listWith(c *fiber.Ctx, activeOnly bool) error {
	query := service.DistributorListQuery{
		Page:       parseQueryInt(c, "page", 1),
		PageSize:   parseQueryInt(c, "page_size", 20),
		Region:     strings.TrimSpace(c.Query("region")),
		Search:     strings.TrimSpace(c.Query("search")),
		ActiveOnly: activeOnly,
	}

	distributors, meta, err := h.service.List(c.UserContext(), query)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("distributor listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list distributors")
	}

	return utils.SendPaginated(c, "distributors retrieved", distributors, meta)
}

func (h *DistributorHandler) submitInquiry(c *fiber.Ctx) error {
	var payload dto.DistributorInquiryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.SubmitInquiry(c.UserContext(), auditRequest(c), payload); err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(c, h.logger).Error().Err(err).Msg("inquiry submission failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit inquiry")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, "inquiry received", nil)
}

func (h *DistributorHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDistributorNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "distributor not found")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
