package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
)

var (
	// ErrArticleNotFound indicates the requested article does not exist.
	ErrArticleNotFound = errors.New("article not found")
	// ErrArticleSlugTaken indicates a slug collision with another article.
	ErrArticleSlugTaken = errors.New("article slug already in use")
	// ErrArticleAlreadyPublished indicates a publish call on a live article.
	ErrArticleAlreadyPublished = errors.New("article is already published")
	// ErrArticleNotPublished indicates an unpublish call on a draft.
	ErrArticleNotPublished = errors.New("article is not published")
)

// ArticleListQuery is the service-level filter for article listings.
type ArticleListQuery struct {
	Page          int
	PageSize      int
	Search        string
	Lang          string
	PublishedOnly bool
}

// ArticleService manages news entries. Body HTML is sanitized before storage
// so stored markup is safe to render verbatim.
type ArticleService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreateArticleRequest) (dto.ArticleResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateArticleRequest) (dto.ArticleResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	GetBySlug(ctx context.Context, slug string) (dto.ArticleResponse, error)
	List(ctx context.Context, query ArticleListQuery) ([]dto.ArticleResponse, dto.PaginationMeta, error)
	Publish(ctx context.Context, req audit.Request, id uint) (dto.ArticleResponse, error)
	Unpublish(ctx context.Context, req audit.Request, id uint) (dto.ArticleResponse, error)
}

type articleService struct {
	articles  repository.ArticleRepository
	sanitizer *bluemonday.Policy
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewArticleService constructs the article service.
func NewArticleService(articles repository.ArticleRepository, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger) ArticleService {
	return &articleService{
		articles:  articles,
		sanitizer: bluemonday.UGCPolicy(),
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "article_service").Logger(),
		now:       time.Now,
	}
}

func (s *articleService) Create(ctx context.Context, req audit.Request, payload dto.CreateArticleRequest) (dto.ArticleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ArticleResponse{}, err
	}

	taken, err := s.articles.SlugExists(ctx, payload.Slug, 0)
	if err != nil {
		return dto.ArticleResponse{}, err
	}
	if taken {
		return dto.ArticleResponse{}, ErrArticleSlugTaken
	}

	article := models.Article{
		Slug:     payload.Slug,
		Title:    payload.Title,
		Lang:     payload.Lang,
		Summary:  payload.Summary,
		Body:     s.sanitizer.Sanitize(payload.Body),
		CoverURL: payload.CoverURL,
	}
	if article.Lang == "" {
		article.Lang = "en"
	}

	if err := s.articles.Create(ctx, &article); err != nil {
		return dto.ArticleResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &article, audit.ChangeOptions{}); err != nil {
		return dto.ArticleResponse{}, err
	}

	return dto.NewArticleResponse(article), nil
}

func (s *articleService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateArticleRequest) (dto.ArticleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ArticleResponse{}, err
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ArticleResponse{}, ErrArticleNotFound
		}
		return dto.ArticleResponse{}, err
	}

	if payload.Slug != nil && *payload.Slug != article.Slug {
		taken, err := s.articles.SlugExists(ctx, *payload.Slug, article.ID)
		if err != nil {
			return dto.ArticleResponse{}, err
		}
		if taken {
			return dto.ArticleResponse{}, ErrArticleSlugTaken
		}
	}

	before := *article
	if payload.Slug != nil {
		article.Slug = *payload.Slug
	}
	if payload.Title != nil {
		article.Title = *payload.Title
	}
	if payload.Lang != nil {
		article.Lang = *payload.Lang
	}
	if payload.Summary != nil {
		article.Summary = *payload.Summary
	}
	if payload.Body != nil {
		article.Body = s.sanitizer.Sanitize(*payload.Body)
	}
	if payload.CoverURL != nil {
		article.CoverURL = *payload.CoverURL
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return dto.ArticleResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, article, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.ArticleResponse{}, err
	}

	return dto.NewArticleResponse(*article), nil
}

func (s *articleService) Delete(ctx context.Context, req audit.Request, id uint) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return err
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.auditor.LogChange(ctx, req, audit.ActionDelete, article, audit.ChangeOptions{})
	return err
}

func (s *articleService) GetBySlug(ctx context.Context, slug string) (dto.ArticleResponse, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ArticleResponse{}, ErrArticleNotFound
		}
		return dto.ArticleResponse{}, err
	}
	return dto.NewArticleResponse(*article), nil
}

func (s *articleService) List(ctx context.Context, query ArticleListQuery) ([]dto.ArticleResponse, dto.PaginationMeta, error) {
	articles, total, err := s.articles.List(ctx, repository.ArticleFilter{
		Page:          query.Page,
		PageSize:      query.PageSize,
		Search:        query.Search,
		Lang:          query.Lang,
		PublishedOnly: query.PublishedOnly,
	})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewArticleResponseSlice(articles), dto.NewPaginationMeta(query.Page, query.PageSize, total), nil
}

func (s *articleService) Publish(ctx context.Context, req audit.Request, id uint) (dto.ArticleResponse, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ArticleResponse{}, ErrArticleNotFound
		}
		return dto.ArticleResponse{}, err
	}
	if article.IsPublished {
		return dto.ArticleResponse{}, ErrArticleAlreadyPublished
	}

	now := s.now()
	article.IsPublished = true
	article.PublishedAt = &now
	if err := s.articles.Update(ctx, article); err != nil {
		return dto.ArticleResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionPublish, article, audit.ChangeOptions{}); err != nil {
		return dto.ArticleResponse{}, err
	}

	return dto.NewArticleResponse(*article), nil
}

func (s *articleService) Unpublish(ctx context.Context, req audit.Request, id uint) (dto.ArticleResponse, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ArticleResponse{}, ErrArticleNotFound
		}
		return dto.ArticleResponse{}, err
	}
	if !article.IsPublished {
		return dto.ArticleResponse{}, ErrArticleNotPublished
	}

	article.IsPublished = false
	article.PublishedAt = nil
	if err := s.articles.Update(ctx, article); err != nil {
		return dto.ArticleResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUnpublish, article, audit.ChangeOptions{}); err != nil {
		return dto.ArticleResponse{}, err
	}

	return dto.NewArticleResponse(*article), nil
}
