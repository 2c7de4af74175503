package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/middleware"
	"github.com/atlastile/cms-go-api/internal/service"
	"github.com/atlastile/cms-go-api/internal/utils"
)

// UserHandler exposes account management for administrators and the profile
// surface of the signed-in user.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the user handler.
func NewUserHandler(svc service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register mounts the admin account-management routes. Account management is
// guarded per route: editors reach other /admin groups, but only admins may
// touch accounts.
func (h *UserHandler) Register(router fiber.Router) {
	adminOnly := middleware.AuthOptions{Role: middleware.AuthRoleAdmin}
	router.Get("", middleware.WithAuth(h.list, adminOnly))
	router.Post("", middleware.WithAuth(h.create, adminOnly))
	router.Get("/:id", middleware.WithAuth(h.get, adminOnly))
	router.Put("/:id", middleware.WithAuth(h.update, adminOnly))
	router.Delete("/:id", middleware.WithAuth(h.delete, adminOnly))
	router.Put("/:id/password", middleware.WithAuth(h.resetPassword, adminOnly))
}

// RegisterProfile mounts the self-service profile routes for any signed-in
// role.
func (h *UserHandler) RegisterProfile(router fiber.Router) {
	signedIn := middleware.AuthOptions{RequireUser: true}
	router.Get("", middleware.WithAuth(h.me, signedIn))
	router.Put("", middleware.WithAuth(h.updateProfile, signedIn))
	router.Put("/password", middleware.WithAuth(h.changePassword, signedIn))
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateUserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.Create(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to create user")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload dto.UpdateUserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.Update(c.UserContext(), auditRequest(c), id, payload)
	if err != nil {
		return h.mapError(c, err, "failed to update user")
	}

	return utils.SendSuccess(c, "user updated", user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.service.Delete(c.UserContext(), auditRequest(c), id); err != nil {
		return h.mapError(c, err, "failed to delete user")
	}

	return utils.SendSuccess(c, "user deleted", nil)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load user")
	}

	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	query := service.UserListQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
		Search:   c.Query("search"),
		Role:     c.Query("role"),
	}

	users, meta, err := h.service.List(c.UserContext(), query)
	if err != nil {
		requestLogger(c, h.logger).Error().Err(err).Msg("user listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return utils.SendPaginated(c, "users retrieved", users, meta)
}

func (h *UserHandler) resetPassword(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload dto.ResetPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.ResetPassword(c.UserContext(), auditRequest(c), id, payload); err != nil {
		return h.mapError(c, err, "failed to reset password")
	}

	return utils.SendSuccess(c, "password reset", nil)
}

func (h *UserHandler) me(c *fiber.Ctx) error {
	principal := principalFrom(c)
	if principal == nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	user, err := h.service.Get(c.UserContext(), uint(principal.ID))
	if err != nil {
		return h.mapError(c, err, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", user)
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.UpdateProfileRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.UpdateProfile(c.UserContext(), auditRequest(c), payload)
	if err != nil {
		return h.mapError(c, err, "failed to update profile")
	}

	return utils.SendSuccess(c, "profile updated", user)
}

func (h *UserHandler) changePassword(c *fiber.Ctx) error {
	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.ChangePassword(c.UserContext(), auditRequest(c), payload); err != nil {
		return h.mapError(c, err, "failed to change password")
	}

	return utils.SendSuccess(c, "password changed", nil)
}

func principalFrom(c *fiber.Ctx) *audit.Principal {
	if principal, ok := c.Locals("principal").(*audit.Principal); ok {
		return principal
	}
	return nil
}

func (h *UserHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrUsernameTaken):
		return utils.SendError(c, fiber.StatusConflict, "username already in use")
	case errors.Is(err, service.ErrUserEmailTaken):
		return utils.SendError(c, fiber.StatusConflict, "email already in use")
	case errors.Is(err, service.ErrWrongPassword):
		return utils.SendError(c, fiber.StatusBadRequest, "current password is incorrect")
	case errors.Is(err, service.ErrCannotDeleteSelf):
		return utils.SendError(c, fiber.StatusConflict, "cannot delete own account")
	default:
		requestLogger(c, h.logger).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
