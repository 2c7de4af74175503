package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
)

var (
	// ErrSettingNotFound indicates the requested setting does not exist.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingValueInvalid indicates the value does not conform to the
	// schema registered for its kind.
	ErrSettingValueInvalid = errors.New("setting value does not match its kind")
)

// Per-kind JSON Schemas. Text must be a string, number a number, boolean a
// boolean; json accepts any object or array.
var settingKindSchemas = map[string]string{
	models.SettingKindText:    `{"type": "string"}`,
	models.SettingKindNumber:  `{"type": "number"}`,
	models.SettingKindBoolean: `{"type": "boolean"}`,
	models.SettingKindJSON:    `{"type": ["object", "array"]}`,
}

// SettingService manages site-wide configuration entries.
type SettingService interface {
	Upsert(ctx context.Context, req audit.Request, payload dto.UpsertSettingRequest) (dto.SettingResponse, error)
	Delete(ctx context.Context, req audit.Request, slug string) error
	GetBySlug(ctx context.Context, slug string) (dto.SettingResponse, error)
	List(ctx context.Context, publicOnly bool) ([]dto.SettingResponse, error)
}

type settingService struct {
	settings  repository.SettingRepository
	schemas   map[string]*jsonschema.Schema
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSettingService constructs the setting service, compiling the per-kind
// value schemas up front.
func NewSettingService(settings repository.SettingRepository, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger) (SettingService, error) {
	schemas := make(map[string]*jsonschema.Schema, len(settingKindSchemas))
	for kind, raw := range settingKindSchemas {
		compiler := jsonschema.NewCompiler()
		url := "schema://setting/" + kind
		if err := compiler.AddResource(url, strings.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("register %s schema: %w", kind, err)
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", kind, err)
		}
		schemas[kind] = schema
	}

	return &settingService{
		settings:  settings,
		schemas:   schemas,
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "setting_service").Logger(),
	}, nil
}

func (s *settingService) Upsert(ctx context.Context, req audit.Request, payload dto.UpsertSettingRequest) (dto.SettingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SettingResponse{}, err
	}
	if err := s.validateValue(payload.Kind, []byte(payload.Value)); err != nil {
		return dto.SettingResponse{}, err
	}

	existing, err := s.settings.GetBySlug(ctx, payload.Slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SettingResponse{}, err
	}

	if existing == nil {
		setting := models.Setting{
			Slug:  payload.Slug,
			Label: payload.Label,
			Kind:  payload.Kind,
			Value: datatypes.JSON(payload.Value),
		}
		if payload.IsPublic != nil {
			setting.IsPublic = *payload.IsPublic
		}

		if err := s.settings.Create(ctx, &setting); err != nil {
			return dto.SettingResponse{}, err
		}
		if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &setting, audit.ChangeOptions{}); err != nil {
			return dto.SettingResponse{}, err
		}
		return dto.NewSettingResponse(setting), nil
	}

	before := *existing
	existing.Label = payload.Label
	existing.Kind = payload.Kind
	existing.Value = datatypes.JSON(payload.Value)
	if payload.IsPublic != nil {
		existing.IsPublic = *payload.IsPublic
	}

	if err := s.settings.Update(ctx, existing); err != nil {
		return dto.SettingResponse{}, err
	}
	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, existing, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.SettingResponse{}, err
	}
	return dto.NewSettingResponse(*existing), nil
}

func (s *settingService) Delete(ctx context.Context, req audit.Request, slug string) error {
	setting, err := s.settings.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettingNotFound
		}
		return err
	}

	if err := s.settings.Delete(ctx, setting.ID); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, setting, audit.ChangeOptions{})
	return err
}

func (s *settingService) GetBySlug(ctx context.Context, slug string) (dto.SettingResponse, error) {
	setting, err := s.settings.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SettingResponse{}, ErrSettingNotFound
		}
		return dto.SettingResponse{}, err
	}
	return dto.NewSettingResponse(*setting), nil
}

func (s *settingService) List(ctx context.Context, publicOnly bool) ([]dto.SettingResponse, error) {
	settings, err := s.settings.List(ctx, publicOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewSettingResponseSlice(settings), nil
}

func (s *settingService) validateValue(kind string, raw []byte) error {
	schema, ok := s.schemas[kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrSettingValueInvalid, kind)
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingValueInvalid, err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingValueInvalid, err)
	}
	return nil
}
