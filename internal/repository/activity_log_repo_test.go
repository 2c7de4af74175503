package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
)

func setupTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)&mode=memory&test="+t.Name()), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))

	return db
}

func TestActivityLogRepositoryCreateAndFilter(t *testing.T) {
	db := setupTestDB(t, &audit.Record{})
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	id := int64(42)
	require.NoError(t, repo.Create(ctx, &audit.Record{
		Action: audit.ActionCreate, Entity: "product", ComputedEntity: "models.Product",
		EntityID: &id, ActorType: audit.ActorUser, ActorIdentifier: "admin@example.com",
	}))
	require.NoError(t, repo.Create(ctx, &audit.Record{
		Action: audit.ActionView, Entity: "page", ComputedEntity: "-",
		ActorType: audit.ActorGuest, ActorIdentifier: "203.0.113.9", ActorName: "Anonymous Guest",
	}))
	require.NoError(t, repo.Create(ctx, &audit.Record{
		Action: audit.ActionDelete, Entity: "product", ComputedEntity: "models.Product",
		ActorType: audit.ActorUser, ActorIdentifier: "admin@example.com",
	}))

	records, total, err := repo.List(ctx, ActivityLogFilter{Entity: "product"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, records, 2)

	records, total, err = repo.List(ctx, ActivityLogFilter{ActorType: string(audit.ActorGuest)})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "203.0.113.9", records[0].ActorIdentifier)

	records, total, err = repo.List(ctx, ActivityLogFilter{ActorIdentifier: "admin"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	paged, total, err := repo.List(ctx, ActivityLogFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)
}

func TestActivityLogRepositoryGetByID(t *testing.T) {
	db := setupTestDB(t, &audit.Record{})
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	record := &audit.Record{
		Action: audit.ActionLogin, Entity: "user", ComputedEntity: "models.User",
		ActorType: audit.ActorUser, ActorIdentifier: "editor@example.com",
	}
	require.NoError(t, repo.Create(ctx, record))
	require.NotZero(t, record.ID)

	found, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, audit.ActionLogin, found.Action)

	_, err = repo.GetByID(ctx, 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
