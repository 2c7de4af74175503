package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atlastile/cms-go-api/internal/models"
)

func TestStoreRepositoryFiltersAndEmailUniqueness(t *testing.T) {
	db := setupTestDB(t, &models.Store{})
	repo := NewStoreRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Store{Name: "Atlas Jakarta", Address: "Jl. Sudirman 1", City: "Jakarta", Email: "jakarta@example.com"}))
	require.NoError(t, repo.Create(ctx, &models.Store{Name: "Atlas Bandung", Address: "Jl. Asia Afrika 2", City: "Bandung"}))
	require.NoError(t, repo.Create(ctx, &models.Store{Name: "Partner Depot", Address: "Jl. Gatot Subroto 3", City: "Jakarta"}))

	byCity, total, err := repo.List(ctx, StoreFilter{City: "Jakarta"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, byCity, 2)

	byName, total, err := repo.List(ctx, StoreFilter{Search: "Atlas"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, "Atlas Bandung", byName[0].Name, "listing is ordered by name")

	exists, err := repo.EmailExists(ctx, "jakarta@example.com", 0)
	require.NoError(t, err)
	require.True(t, exists)

	store, err := repo.GetByID(ctx, byCity[0].ID)
	require.NoError(t, err)
	exists, err = repo.EmailExists(ctx, store.Email, store.ID)
	require.NoError(t, err)
	require.False(t, exists, "a store must not collide with its own email")

	exists, err = repo.EmailExists(ctx, "", 0)
	require.NoError(t, err)
	require.False(t, exists, "blank emails are not unique-checked")
}

func TestProjectRepositorySearchAndPagination(t *testing.T) {
	db := setupTestDB(t, &models.Project{})
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Project{Slug: "harbor-tower", Title: "Harbor Tower", Location: "Surabaya", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &models.Project{Slug: "hill-villa", Title: "Hill Villa", Description: "Residential tiles in Surabaya", IsActive: false}))
	require.NoError(t, repo.Create(ctx, &models.Project{Slug: "city-mall", Title: "City Mall", Location: "Jakarta", IsActive: true}))

	surabaya, total, err := repo.List(ctx, ProjectFilter{Search: "Surabaya"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, surabaya, 2, "search spans title, description and location")

	active, total, err := repo.List(ctx, ProjectFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, active, 2)

	paged, total, err := repo.List(ctx, ProjectFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)

	exists, err := repo.SlugExists(ctx, "harbor-tower", 0)
	require.NoError(t, err)
	require.True(t, exists)

	project, err := repo.GetBySlug(ctx, "harbor-tower")
	require.NoError(t, err)
	exists, err = repo.SlugExists(ctx, "harbor-tower", project.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUserRepositoryAvailabilityAndListing(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)
	ctx := context.Background()

	admin := models.User{Username: "root", Email: "root@example.com", Password: "x", Role: models.RoleAdmin, IsActive: true}
	editor := models.User{Username: "writer", Email: "writer@example.com", Password: "x", Role: models.RoleEditor, IsActive: true}
	require.NoError(t, repo.Create(ctx, &admin))
	require.NoError(t, repo.Create(ctx, &editor))

	taken, err := repo.UsernameExists(ctx, "writer", 0)
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.UsernameExists(ctx, "writer", editor.ID)
	require.NoError(t, err)
	require.False(t, taken, "a user must not collide with their own username")

	taken, err = repo.EmailExists(ctx, "root@example.com", 0)
	require.NoError(t, err)
	require.True(t, taken)

	admins, total, err := repo.List(ctx, UserFilter{Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "root", admins[0].Username)

	matched, total, err := repo.List(ctx, UserFilter{Search: "writer"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "writer@example.com", matched[0].Email)

	require.NoError(t, repo.Delete(ctx, editor.ID))
	_, total, err = repo.List(ctx, UserFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
