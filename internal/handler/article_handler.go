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

// ArticleHandler exposes news articles with a publish lifecycle.
type ArticleHandler struct {
	service service.ArticleService
	logger  zerolog.Logger
}

// NewArticleHandler constructs the article handler.
func NewArticleHandler(svc service.ArticleService, logger zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		service: svc,
		logger:  logger.With().Str("component", "article_handler").Logger(),
	}
}

// Register mounts the admin article routes.
func (h *ArticleHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/publish", h.publish)
	router.Post("/:id/unpublish", h.unpublish)
}

// RegisterPublic mounts the public article routes, limited to published entries.
func (h *ArticleHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.listPublished)
	router.Get("/:slug", h.getBySlug)
}

func (h *ArticleHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateArticleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	article, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create article")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "article created", article)
}

func (h *ArticleHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid article id")
	}

	var payload dto.UpdateArticleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	article, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update article")
	}

	return utils.SendSuccess(c, "article updated", article)
}

func (h *ArticleHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid article id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete article")
	}

	return utils.SendSuccess(c, "article deleted", nil)
}

func (h *ArticleHandler) publish(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid article id")
	}

	article, err := h.service.Publish(c.UserContext(), auditRequest(c), id)
	if err != nil {
		return h.mapError(c, err, "failed to publish article")
	}

	return utils.SendSuccess(c, "article published", article)
}

func (h *ArticleHandler) unpublish(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid article id")
	}

	article, err := h.service.Unpublish(c.UserContext(), auditRequest(c), id)
	if err != nil {
		return h.mapError(c, err, "failed to unpublish article")
	}

	return utils.SendSuccess(c, "article unpublished", article)
}

func (h *ArticleHandler) list(c *fiber.Ctx) error {
	return h.listWith(c, false)
}

func (h *ArticleHandler) listPublished(c *fiber.Ctx) error {
	return h.listWith(c, true)
}

func (h *ArticleHandler) listWith(c *fiber.Ctx, publishedOnly bool) error {
	query := service.ArticleListQuery{
		Page:          parseQueryInt(c, "page", 1),
		PageSize:      parseQueryInt(c, "page_size", 20),
		Search:        strings.TrimSpace(c.Query("search")),
		Lang:          strings.TrimSpace(c.Query("lang")),
		PublishedOnly: publishedOnly,
	}

	articles, meta, err := h.service.List(c.UserContext(), query)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("article listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list articles")
	}

	return utils.SendPaginated(c, "articles retrieved", articles, meta)
}

func (h *ArticleHandler) getBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	article, err := h.service.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return h.mapError(c, err, "failed to load article")
	}

	return utils.SendSuccess(c, "article retrieved", article)
}

func (h *ArticleHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrArticleNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "article not found")
	case errors.Is(err, service.ErrArticleSlugTaken):
		return utils.SendError(c, fiber.StatusConflict, "article slug already in use")
	case errors.Is(err, service.ErrArticleAlreadyPublished):
		return utils.SendError(c, fiber.StatusConflict, "article already published")
	case errors.Is(err, service.ErrArticleNotPublished):
		return utils.SendError(c, fiber.StatusConflict, "article is not published")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
