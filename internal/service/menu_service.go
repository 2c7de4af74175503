package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
)

var (
	// ErrMenuNotFound indicates the requested menu does not exist.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrMenuSlugTaken indicates a slug collision with another menu.
	ErrMenuSlugTaken = errors.New("menu slug already in use")
	// ErrMenuItemNotFound indicates the requested menu item does not exist.
	ErrMenuItemNotFound = errors.New("menu item not found")
)

const menuTreeCacheTTL = 5 * time.Minute

// MenuService manages navigation menus; the assembled public tree is cached in
// Redis and invalidated on every mutation.
type MenuService interface {
	Create(ctx context.Context, req audit.Request, payload dto.CreateMenuRequest) (dto.MenuResponse, error)
	Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateMenuRequest) (dto.MenuResponse, error)
	Delete(ctx context.Context, req audit.Request, id uint) error
	List(ctx context.Context, activeOnly bool) ([]dto.MenuResponse, error)
	Tree(ctx context.Context, slug string) (dto.MenuResponse, error)

	CreateItem(ctx context.Context, req audit.Request, menuID uint, payload dto.CreateMenuItemRequest) (dto.MenuItemResponse, error)
	UpdateItem(ctx context.Context, req audit.Request, itemID uint, payload dto.UpdateMenuItemRequest) (dto.MenuItemResponse, error)
	DeleteItem(ctx context.Context, req audit.Request, itemID uint) error
}

type menuService struct {
	menus     repository.MenuRepository
	cache     *redis.Client
	auditor   *audit.Writer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMenuService constructs the menu service. The cache client may be nil, in
// which case every tree request hits the database.
func NewMenuService(menus repository.MenuRepository, cache *redis.Client, auditor *audit.Writer, validate *validator.Validate, logger zerolog.Logger) MenuService {
	return &menuService{
		menus:     menus,
		cache:     cache,
		auditor:   auditor,
		validator: validate,
		logger:    logger.With().Str("component", "menu_service").Logger(),
	}
}

func (s *menuService) Create(ctx context.Context, req audit.Request, payload dto.CreateMenuRequest) (dto.MenuResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MenuResponse{}, err
	}

	if _, err := s.menus.GetBySlug(ctx, payload.Slug); err == nil {
		return dto.MenuResponse{}, ErrMenuSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.MenuResponse{}, err
	}

	menu := models.Menu{
		Slug:     payload.Slug,
		Name:     payload.Name,
		Lang:     payload.Lang,
		IsActive: true,
	}
	if menu.Lang == "" {
		menu.Lang = "en"
	}
	if payload.IsActive != nil {
		menu.IsActive = *payload.IsActive
	}

	if err := s.menus.Create(ctx, &menu); err != nil {
		return dto.MenuResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &menu, audit.ChangeOptions{}); err != nil {
		return dto.MenuResponse{}, err
	}

	s.invalidateTree(ctx, menu.Slug)
	return dto.NewMenuResponse(menu), nil
}

func (s *menuService) Update(ctx context.Context, req audit.Request, id uint, payload dto.UpdateMenuRequest) (dto.MenuResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MenuResponse{}, err
	}

	menu, err := s.menus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MenuResponse{}, ErrMenuNotFound
		}
		return dto.MenuResponse{}, err
	}

	if payload.Slug != nil && *payload.Slug != menu.Slug {
		if _, err := s.menus.GetBySlug(ctx, *payload.Slug); err == nil {
			return dto.MenuResponse{}, ErrMenuSlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MenuResponse{}, err
		}
	}

	oldSlug := menu.Slug
	before := *menu
	if payload.Slug != nil {
		menu.Slug = *payload.Slug
	}
	if payload.Name != nil {
		menu.Name = *payload.Name
	}
	if payload.Lang != nil {
		menu.Lang = *payload.Lang
	}
	if payload.IsActive != nil {
		menu.IsActive = *payload.IsActive
	}

	if err := s.menus.Update(ctx, menu); err != nil {
		return dto.MenuResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, menu, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.MenuResponse{}, err
	}

	s.invalidateTree(ctx, oldSlug, menu.Slug)
	return dto.NewMenuResponse(*menu), nil
}

func (s *menuService) Delete(ctx context.Context, req audit.Request, id uint) error {
	menu, err := s.menus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		}
		return err
	}

	if err := s.menus.Delete(ctx, id); err != nil {
		return err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionDelete, menu, audit.ChangeOptions{}); err != nil {
		return err
	}

	s.invalidateTree(ctx, menu.Slug)
	return nil
}

func (s *menuService) List(ctx context.Context, activeOnly bool) ([]dto.MenuResponse, error) {
	menus, err := s.menus.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewMenuResponseSlice(menus), nil
}

// Tree returns a menu with its items assembled into a parent/child hierarchy,
// serving from cache when possible.
func (s *menuService) Tree(ctx context.Context, slug string) (dto.MenuResponse, error) {
	if cached, ok := s.treeFromCache(ctx, slug); ok {
		return cached, nil
	}

	menu, err := s.menus.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MenuResponse{}, ErrMenuNotFound
		}
		return dto.MenuResponse{}, err
	}

	items, err := s.menus.ListItems(ctx, menu.ID)
	if err != nil {
		return dto.MenuResponse{}, err
	}
	menu.Items = buildMenuTree(items)

	response := dto.NewMenuResponse(*menu)
	s.storeTree(ctx, slug, response)
	return response, nil
}

func (s *menuService) CreateItem(ctx context.Context, req audit.Request, menuID uint, payload dto.CreateMenuItemRequest) (dto.MenuItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MenuItemResponse{}, err
	}

	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MenuItemResponse{}, ErrMenuNotFound
		}
		return dto.MenuItemResponse{}, err
	}

	item := models.MenuItem{
		MenuID:   menu.ID,
		ParentID: payload.ParentID,
		Title:    payload.Title,
		URL:      payload.URL,
		OrderNo:  payload.OrderNo,
		IsActive: true,
	}
	if payload.IsActive != nil {
		item.IsActive = *payload.IsActive
	}

	if err := s.menus.CreateItem(ctx, &item); err != nil {
		return dto.MenuItemResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionCreate, &item, audit.ChangeOptions{}); err != nil {
		return dto.MenuItemResponse{}, err
	}

	s.invalidateTree(ctx, menu.Slug)
	return dto.NewMenuItemResponse(item), nil
}

func (s *menuService) UpdateItem(ctx context.Context, req audit.Request, itemID uint, payload dto.UpdateMenuItemRequest) (dto.MenuItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MenuItemResponse{}, err
	}

	item, err := s.menus.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MenuItemResponse{}, ErrMenuItemNotFound
		}
		return dto.MenuItemResponse{}, err
	}

	before := *item
	if payload.ParentID != nil {
		item.ParentID = payload.ParentID
	}
	if payload.Title != nil {
		item.Title = *payload.Title
	}
	if payload.URL != nil {
		item.URL = *payload.URL
	}
	if payload.OrderNo != nil {
		item.OrderNo = *payload.OrderNo
	}
	if payload.IsActive != nil {
		item.IsActive = *payload.IsActive
	}

	if err := s.menus.UpdateItem(ctx, item); err != nil {
		return dto.MenuItemResponse{}, err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionUpdate, item, audit.ChangeOptions{Old: &before}); err != nil {
		return dto.MenuItemResponse{}, err
	}

	s.invalidateItemMenu(ctx, item.MenuID)
	return dto.NewMenuItemResponse(*item), nil
}

func (s *menuService) DeleteItem(ctx context.Context, req audit.Request, itemID uint) error {
	item, err := s.menus.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuItemNotFound
		}
		return err
	}

	if err := s.menus.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	if _, err := s.auditor.LogChange(ctx, req, audit.ActionDelete, item, audit.ChangeOptions{}); err != nil {
		return err
	}

	s.invalidateItemMenu(ctx, item.MenuID)
	return nil
}

// buildMenuTree nests items one level deep under their parents, keeping the
// repository ordering within each level.
func buildMenuTree(items []models.MenuItem) []models.MenuItem {
	children := make(map[uint][]models.MenuItem)
	var roots []models.MenuItem

	for _, item := range items {
		if item.ParentID == nil {
			roots = append(roots, item)
			continue
		}
		children[*item.ParentID] = append(children[*item.ParentID], item)
	}

	for i := range roots {
		roots[i].Children = children[roots[i].ID]
		sort.SliceStable(roots[i].Children, func(a, b int) bool {
			return roots[i].Children[a].OrderNo < roots[i].Children[b].OrderNo
		})
	}

	return roots
}

func menuTreeCacheKey(slug string) string {
	return "cms:menu_tree:" + slug
}

func (s *menuService) treeFromCache(ctx context.Context, slug string) (dto.MenuResponse, bool) {
	if s.cache == nil {
		return dto.MenuResponse{}, false
	}

	raw, err := s.cache.Get(ctx, menuTreeCacheKey(slug)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("menu tree cache read failed")
		}
		return dto.MenuResponse{}, false
	}

	var response dto.MenuResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("menu tree cache entry corrupt")
		return dto.MenuResponse{}, false
	}
	return response, true
}

func (s *menuService) storeTree(ctx context.Context, slug string, response dto.MenuResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, menuTreeCacheKey(slug), payload, menuTreeCacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("menu tree cache write failed")
	}
}

func (s *menuService) invalidateTree(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}

	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, menuTreeCacheKey(slug))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("menu tree cache invalidation failed")
	}
}

func (s *menuService) invalidateItemMenu(ctx context.Context, menuID uint) {
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return
	}
	s.invalidateTree(ctx, menu.Slug)
}
