package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates an unknown login or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled indicates the account exists but is deactivated.
	ErrAccountDisabled = errors.New("account is disabled")
)

// AuthService authenticates back-office users and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, req audit.Request, payload dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, req audit.Request) error
}

type authService struct {
	users     repository.UserRepository
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
	secret    string
	tokenTTL  time.Duration
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger, secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		users:     users,
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		secret:    secret,
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, req audit.Request, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}
	if !user.CheckPassword(payload.Password, s.secret) {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return dto.LoginResponse{}, ErrAccountDisabled
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to update last login timestamp")
	}

	// The login record is attributed to the freshly authenticated user even
	// though the incoming request carried no token.
	req.Principal = user.Principal()
	if _, err := s.auditor.LogChange(ctx, req, audit.ActionLogin, user, audit.ChangeOptions{
		Description: "User logged in: " + user.Username,
	}); err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(*user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, req audit.Request) error {
	if !req.Authenticated() {
		return ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, uint(req.Principal.ID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionLogout, user, audit.ChangeOptions{
		Description: "User logged out: " + user.Username,
	})
	return err
}
