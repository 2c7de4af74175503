package service

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/models"
)

type memoryMenuRepo struct {
	menus      map[uint]models.Menu
	items      map[uint]models.MenuItem
	nextMenu   uint
	nextItem   uint
	listCalls  int
	itemsCalls int
}

func newMemoryMenuRepo() *memoryMenuRepo {
	return &memoryMenuRepo{
		menus: map[uint]models.Menu{}, items: map[uint]models.MenuItem{},
		nextMenu: 1, nextItem: 1,
	}
}

func (m *memoryMenuRepo) Create(_ context.Context, menu *models.Menu) error {
	menu.ID = m.nextMenu
	m.nextMenu++
	m.menus[menu.ID] = *menu
	return nil
}

func (m *memoryMenuRepo) Update(_ context.Context, menu *models.Menu) error {
	m.menus[menu.ID] = *menu
	return nil
}

func (m *memoryMenuRepo) Delete(_ context.Context, id uint) error {
	delete(m.menus, id)
	return nil
}

func (m *memoryMenuRepo) GetByID(_ context.Context, id uint) (*models.Menu, error) {
	menu, ok := m.menus[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &menu, nil
}

func (m *memoryMenuRepo) GetBySlug(_ context.Context, slug string) (*models.Menu, error) {
	for _, menu := range m.menus {
		if menu.Slug == slug {
			return &menu, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryMenuRepo) List(_ context.Context, _ bool) ([]models.Menu, error) {
	m.listCalls++
	out := make([]models.Menu, 0, len(m.menus))
	for _, menu := range m.menus {
		out = append(out, menu)
	}
	return out, nil
}

func (m *memoryMenuRepo) CreateItem(_ context.Context, item *models.MenuItem) error {
	item.ID = m.nextItem
	m.nextItem++
	m.items[item.ID] = *item
	return nil
}

func (m *memoryMenuRepo) UpdateItem(_ context.Context, item *models.MenuItem) error {
	m.items[item.ID] = *item
	return nil
}

func (m *memoryMenuRepo) DeleteItem(_ context.Context, id uint) error {
	delete(m.items, id)
	return nil
}

func (m *memoryMenuRepo) GetItem(_ context.Context, id uint) (*models.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (m *memoryMenuRepo) ListItems(_ context.Context, menuID uint) ([]models.MenuItem, error) {
	m.itemsCalls++
	var out []models.MenuItem
	for _, item := range m.items {
		if item.MenuID == menuID {
			out = append(out, item)
		}
	}
	// Order by OrderNo to match the repository contract.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].OrderNo < out[i].OrderNo {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func TestMenuServiceTreeNestsChildren(t *testing.T) {
	repo := newMemoryMenuRepo()
	auditor, _ := testAuditor()
	svc := NewMenuService(repo, nil, auditor, testValidator(), testLogger())
	ctx := context.Background()

	menu, err := svc.Create(ctx, adminRequest(), dto.CreateMenuRequest{Slug: "header", Name: "Header"})
	require.NoError(t, err)

	home, err := svc.CreateItem(ctx, adminRequest(), menu.ID, dto.CreateMenuItemRequest{Title: "Home", OrderNo: 0})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, adminRequest(), menu.ID, dto.CreateMenuItemRequest{Title: "Products", OrderNo: 1})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, adminRequest(), menu.ID, dto.CreateMenuItemRequest{
		Title: "News", OrderNo: 0, ParentID: &home.ID,
	})
	require.NoError(t, err)

	tree, err := svc.Tree(ctx, "header")
	require.NoError(t, err)
	require.Len(t, tree.Items, 2)
	require.Equal(t, "Home", tree.Items[0].Title)
	require.Len(t, tree.Items[0].Children, 1)
	require.Equal(t, "News", tree.Items[0].Children[0].Title)
	require.Empty(t, tree.Items[1].Children)
}

func TestMenuServiceTreeServedFromCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	repo := newMemoryMenuRepo()
	auditor, _ := testAuditor()
	svc := NewMenuService(repo, cache, auditor, testValidator(), testLogger())
	ctx := context.Background()

	_, err = svc.Create(ctx, adminRequest(), dto.CreateMenuRequest{Slug: "footer", Name: "Footer"})
	require.NoError(t, err)

	_, err = svc.Tree(ctx, "footer")
	require.NoError(t, err)
	require.Equal(t, 1, repo.itemsCalls)

	// Second read hits the cache, not the repository.
	_, err = svc.Tree(ctx, "footer")
	require.NoError(t, err)
	require.Equal(t, 1, repo.itemsCalls)
}

func TestMenuServiceMutationInvalidatesCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	repo := newMemoryMenuRepo()
	auditor, _ := testAuditor()
	svc := NewMenuService(repo, cache, auditor, testValidator(), testLogger())
	ctx := context.Background()

	menu, err := svc.Create(ctx, adminRequest(), dto.CreateMenuRequest{Slug: "side", Name: "Side"})
	require.NoError(t, err)

	_, err = svc.Tree(ctx, "side")
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, adminRequest(), menu.ID, dto.CreateMenuItemRequest{Title: "Contact"})
	require.NoError(t, err)

	tree, err := svc.Tree(ctx, "side")
	require.NoError(t, err)
	require.Len(t, tree.Items, 1)
}

func TestMenuServiceDuplicateSlug(t *testing.T) {
	repo := newMemoryMenuRepo()
	auditor, _ := testAuditor()
	svc := NewMenuService(repo, nil, auditor, testValidator(), testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, adminRequest(), dto.CreateMenuRequest{Slug: "main", Name: "Main"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminRequest(), dto.CreateMenuRequest{Slug: "main", Name: "Other"})
	require.ErrorIs(t, err, ErrMenuSlugTaken)
}
