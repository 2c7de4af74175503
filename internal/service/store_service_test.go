package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
)

type memoryStoreRepo struct {
	stores map[uint]models.Store
	nextID uint
}

func newMemoryStoreRepo() *memoryStoreRepo {
	return &memoryStoreRepo{stores: map[uint]models.Store{}, nextID: 1}
}

func (m *memoryStoreRepo) Create(_ context.Context, store *models.Store) error {
	store.ID = m.nextID
	m.nextID++
	m.stores[store.ID] = *store
	return nil
}

func (m *memoryStoreRepo) Update(_ context.Context, store *models.Store) error {
	m.stores[store.ID] = *store
	return nil
}

func (m *memoryStoreRepo) Delete(_ context.Context, id uint) error {
	delete(m.stores, id)
	return nil
}

func (m *memoryStoreRepo) GetByID(_ context.Context, id uint) (*models.Store, error) {
	store, ok := m.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &store, nil
}

func (m *memoryStoreRepo) EmailExists(_ context.Context, email string, excludeID uint) (bool, error) {
	if email == "" {
		return false, nil
	}
	for _, store := range m.stores {
		if store.Email == email && store.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStoreRepo) List(_ context.Context, filter repository.StoreFilter) ([]models.Store, int64, error) {
	var out []models.Store
	for _, store := range m.stores {
		if filter.City != "" && store.City != filter.City {
			continue
		}
		if filter.Search != "" && !strings.Contains(store.Name, filter.Search) {
			continue
		}
		out = append(out, store)
	}
	return out, int64(len(out)), nil
}

func newStoreService() (StoreService, *memoryAuditStore) {
	auditor, store := testAuditor()
	return NewStoreService(newMemoryStoreRepo(), auditor, testValidator(), testLogger()), store
}

func TestStoreServiceCreateAuditsRecord(t *testing.T) {
	svc, store := newStoreService()

	resp, err := svc.Create(context.Background(), adminRequest(), dto.CreateStoreRequest{
		Name:    "Atlas Jakarta",
		Address: "Jl. Sudirman 1",
		City:    "Jakarta",
		Email:   "jakarta@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	record := store.last()
	require.Equal(t, audit.ActionCreate, record.Action)
	require.Equal(t, "store", record.Entity)
	require.Equal(t, "Jakarta", record.NewValues["city"])
}

func TestStoreServiceEmailUniqueness(t *testing.T) {
	svc, _ := newStoreService()
	ctx := context.Background()

	first, err := svc.Create(ctx, adminRequest(), dto.CreateStoreRequest{
		Name: "Atlas Jakarta", Address: "Jl. Sudirman 1", Email: "shared@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminRequest(), dto.CreateStoreRequest{
		Name: "Atlas Bandung", Address: "Jl. Asia Afrika 2", Email: "shared@example.com",
	})
	require.ErrorIs(t, err, ErrStoreEmailTaken)

	// Updating a store to its own email is not a collision.
	_, err = svc.Update(ctx, adminRequest(), first.ID, dto.UpdateStoreRequest{Email: strPtr("shared@example.com")})
	require.NoError(t, err)
}

func TestStoreServiceNoOpUpdateDowngradesToView(t *testing.T) {
	svc, store := newStoreService()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminRequest(), dto.CreateStoreRequest{
		Name: "Atlas Surabaya", Address: "Jl. Pemuda 10", City: "Surabaya",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, adminRequest(), created.ID, dto.UpdateStoreRequest{City: strPtr("Surabaya")})
	require.NoError(t, err)

	record := store.last()
	require.Equal(t, audit.ActionView, record.Action)
	require.Empty(t, record.ChangedFields)
}

func TestStoreServiceDeleteUnknown(t *testing.T) {
	svc, _ := newStoreService()
	require.ErrorIs(t, svc.Delete(context.Background(), adminRequest(), 42), ErrStoreNotFound)
}
