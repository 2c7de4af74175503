package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/service"
	"github.com/atlastile/cms-go-api/internal/utils"
)

// ProjectHandler exposes the portfolio section.
type ProjectHandler struct {
	service service.ProjectService
	logger  zerolog.Logger
}

// NewProjectHandler constructs the project handler.
func NewProjectHandler(svc service.ProjectService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: svc,
		logger:  logger.With().Str("component", "project_handler").Logger(),
	}
}

// Register mounts the admin project routes.
func (h *ProjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

// RegisterPublic mounts the public portfolio routes.
func (h *ProjectHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.listActive)
	router.Get("/:slug", h.getBySlug)
}

func (h *ProjectHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateProjectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	project, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create project")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project created", project)
}

func (h *ProjectHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.UpdateProjectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	project, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update project")
	}

	return utils.SendSuccess(c, "project updated", project)
}

func (h *ProjectHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete project")
	}

	return utils.SendSuccess(c, "project deleted", nil)
}

func (h *ProjectHandler) getBySlug(c *fiber.Ctx) error {
	project, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.mapError(c, err, "failed to load project")
	}

	return utils.SendSuccess(c, "project retrieved", project)
}

func (h *ProjectHandler) list(c *fiber.Ctx) error {
	return h.listWith(c, false)
}

func (h *ProjectHandler) listActive(c *fiber.Ctx) error {
	return h.listWith(c, true)
}

func (h *ProjectHandler) listWith(c *fiber.Ctx, activeOnly bool) error {
	query := service.ProjectListQuery{
		Page:       parseQueryInt(c, "page", 1),
		PageSize:   parseQueryInt(c, "page_size", 20),
		Search:     c.Query("search"),
		ActiveOnly: activeOnly,
	}

	projects, meta, err := h.service.List(c.UserContext(), query)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("project listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list projects")
	}

	return utils.SendPaginated(c, "projects retrieved", projects, meta)
}

func (h *ProjectHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProjectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "project not found")
	case errors.Is(err, service.ErrProjectSlugTaken):
		return utils.SendError(c, fiber.StatusConflict, "project slug already in use")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
