package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
)

var (
	// ErrUserNotFound indicates the requested account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken indicates another account already uses the username.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrUserEmailTaken indicates another account already uses the email.
	ErrUserEmailTaken = errors.New("user email already in use")
	// ErrWrongPassword indicates the current password did not verify.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrCannotDeleteSelf indicates an admin tried to delete their own account.
	ErrCannotDeleteSelf = errors.New("cannot delete own account")
)

// UserListQuery is the service-level filter for admin user listings.
type UserListQuery struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

// UserService covers admin account management plus the self-service profile
// operations of the signed-in user.
type UserService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreateUserRequest) (dto.UserResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateUserRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	List(ctx context.Context, query UserListQuery) ([]dto.UserResponse, dto.PaginationMeta, error)
	ResetPassword(ctx context.Context, req audit.Request, id uint, payload dto.ResetPasswordRequest) error
	UpdateProfile(ctx context.Context, req audit.Request, payload dto.UpdateProfileRequest) (dto.UserResponse, error)
	ChangePassword(ctx context.Context, req audit.Request, payload dto.ChangePasswordRequest) error
}

type userService struct {
	users     repository.UserRepository
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
	secret    string
}

// NewUserService constructs the user management service.
func NewUserService(users repository.UserRepository, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger, secret string) UserService {
	return &userService{
		users:     users,
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
		secret:    secret,
	}
}

func (s *userService) Create(ctx context.Context, req audit.Request, payload dto.CreateUserRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.checkAvailability(ctx, payload.Username, payload.Email, 0); err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Username: payload.Username,
		Email:    payload.Email,
		Name:     payload.Name,
		Role:     payload.Role,
		IsActive: true,
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if err := user.SetPassword(payload.Password, s.secret); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &user, audit.ChangeOptions{}); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateUserRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	username, email := "", ""
	if payload.Username != nil && *payload.Username != user.Username {
		username = *payload.Username
	}
	if payload.Email != nil && *payload.Email != user.Email {
		email = *payload.Email
	}
	if err := s.checkAvailability(ctx, username, email, user.ID); err != nil {
		return dto.UserResponse{}, err
	}

	before := *user
	if payload.Username != nil {
		user.Username = *payload.Username
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.Name != nil {
		user.Name = *payload.Name
	}
	if payload.Role != nil {
		user.Role = *payload.Role
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, user, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(*user), nil
}

func (s *userService) Delete(ctx context.Context, req audit.Request, id uint) error {
	if req.Authenticated() && uint(req.Principal.ID) == id {
		return ErrCannotDeleteSelf
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, user, audit.ChangeOptions{})
	return err
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(*user), nil
}

func (s *userService) List(ctx context.Context, query UserListQuery) ([]dto.UserResponse, dto.PaginationMeta, error) {
	users, total, err := s.users.List(ctx, repository.UserFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
		Role:     query.Role,
	})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		responses[i] = dto.NewUserResponse(user)
	}
	return responses, dto.NewPaginationMeta(query.Page, query.PageSize, total), nil
}

func (s *userService) ResetPassword(ctx context.Context, req audit.Request, id uint, payload dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	before := *user
	if err := user.SetPassword(payload.NewPassword, s.secret); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionUpdate, user, audit.ChangeOptions{
		Old:         &before,
		Description: "Password reset for user: " + user.Username,
	})
	return err
}

func (s *userService) UpdateProfile(ctx context.Context, req audit.Request, payload dto.UpdateProfileRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}
	if !req.Authenticated() {
		return dto.UserResponse{}, ErrUserNotFound
	}

	user, err := s.users.GetByID(ctx, uint(req.Principal.ID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	username, email := "", ""
	if payload.Username != nil && *payload.Username != user.Username {
		username = *payload.Username
	}
	if payload.Email != nil && *payload.Email != user.Email {
		email = *payload.Email
	}
	if err := s.checkAvailability(ctx, username, email, user.ID); err != nil {
		return dto.UserResponse{}, err
	}

	before := *user
	if payload.Username != nil {
		user.Username = *payload.Username
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.Name != nil {
		user.Name = *payload.Name
	}

	if err := s.users.Update(ctx, user); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, user, audit.ChangeOptions{
		Old:         &before,
		Description: "User " + user.Username + " updated their profile.",
	}); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(*user), nil
}

func (s *userService) ChangePassword(ctx context.Context, req audit.Request, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}
	if !req.Authenticated() {
		return ErrUserNotFound
	}

	user, err := s.users.GetByID(ctx, uint(req.Principal.ID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !user.CheckPassword(payload.CurrentPassword, s.secret) {
		return ErrWrongPassword
	}

	before := *user
	if err := user.SetPassword(payload.NewPassword, s.secret); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionUpdate, user, audit.ChangeOptions{
		Old:         &before,
		Description: "User " + user.Username + " changed their password.",
	})
	return err
}

// checkAvailability verifies username/email uniqueness; blank values are
// skipped so partial updates only check what actually changes.
func (s *userService) checkAvailability(ctx context.Context, username, email string, excludeID uint) error {
	if username != "" {
		taken, err := s.users.UsernameExists(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
	}
	if email != "" {
		taken, err := s.users.EmailExists(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return ErrUserEmailTaken
		}
	}
	return nil
}
