package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/dto"
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
)

type memoryProductRepo struct {
	products map[uint]models.Product
	nextID   uint
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{products: map[uint]models.Product{}, nextID: 1}
}

func (m *memoryProductRepo) Create(_ context.Context, product *models.Product) error {
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = *product
	return nil
}

func (m *memoryProductRepo) CreateBatch(ctx context.Context, products []*models.Product) error {
	for _, product := range products {
		if err := m.Create(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryProductRepo) Update(_ context.Context, product *models.Product) error {
	m.products[product.ID] = *product
	return nil
}

func (m *memoryProductRepo) Delete(_ context.Context, id uint) error {
	delete(m.products, id)
	return nil
}

func (m *memoryProductRepo) GetByID(_ context.Context, id uint) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (m *memoryProductRepo) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, product := range m.products {
		if product.Slug == slug {
			return &product, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryProductRepo) SlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	for _, product := range m.products {
		if product.Slug == slug && product.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]models.Product, int64, error) {
	out := make([]models.Product, 0, len(m.products))
	for _, product := range m.products {
		out = append(out, product)
	}
	return out, int64(len(out)), nil
}

type memoryCategoryRepo struct {
	categories map[uint]models.ProductCategory
}

func (m *memoryCategoryRepo) Create(_ context.Context, category *models.ProductCategory) error {
	if m.categories == nil {
		m.categories = map[uint]models.ProductCategory{}
	}
	category.ID = uint(len(m.categories) + 1)
	m.categories[category.ID] = *category
	return nil
}

func (m *memoryCategoryRepo) Update(_ context.Context, category *models.ProductCategory) error {
	m.categories[category.ID] = *category
	return nil
}

func (m *memoryCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(m.categories, id)
	return nil
}

func (m *memoryCategoryRepo) GetByID(_ context.Context, id uint) (*models.ProductCategory, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &category, nil
}

func (m *memoryCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.ProductCategory, error) {
	for _, category := range m.categories {
		if category.Slug == slug {
			return &category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryCategoryRepo) List(_ context.Context, _ bool) ([]models.ProductCategory, error) {
	out := make([]models.ProductCategory, 0, len(m.categories))
	for _, category := range m.categories {
		out = append(out, category)
	}
	return out, nil
}

type memoryBrochureRepo struct {
	brochures map[uint]models.Brochure
}

func (m *memoryBrochureRepo) Create(_ context.Context, brochure *models.Brochure) error {
	if m.brochures == nil {
		m.brochures = map[uint]models.Brochure{}
	}
	brochure.ID = uint(len(m.brochures) + 1)
	m.brochures[brochure.ID] = *brochure
	return nil
}

func (m *memoryBrochureRepo) Delete(_ context.Context, id uint) error {
	delete(m.brochures, id)
	return nil
}

func (m *memoryBrochureRepo) GetByID(_ context.Context, id uint) (*models.Brochure, error) {
	brochure, ok := m.brochures[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &brochure, nil
}

func (m *memoryBrochureRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := m.brochures[id]
	return ok, nil
}

func (m *memoryBrochureRepo) List(_ context.Context) ([]models.Brochure, error) {
	out := make([]models.Brochure, 0, len(m.brochures))
	for _, brochure := range m.brochures {
		out = append(out, brochure)
	}
	return out, nil
}

func newProductService(t *testing.T) (ProductService, *memoryProductRepo, *memoryAuditStore) {
	t.Helper()
	repo := newMemoryProductRepo()
	auditor, store := testAuditor()
	svc := NewProductService(repo, &memoryCategoryRepo{}, &memoryBrochureRepo{}, auditor, testValidator(), testLogger())
	return svc, repo, store
}

func TestProductServiceCreateWritesAuditRecord(t *testing.T) {
	svc, _, store := newProductService(t)

	resp, err := svc.Create(context.Background(), adminRequest(), dto.CreateProductRequest{
		Slug: "glazed-tile",
		Name: "Glazed Tile",
	})
	require.NoError(t, err)
	require.Equal(t, "glazed-tile", resp.Slug)
	require.True(t, resp.IsActive)

	record := store.last()
	require.NotNil(t, record)
	require.Equal(t, audit.ActionCreate, record.Action)
	require.Equal(t, "product", record.Entity)
	require.Equal(t, "models.Product", record.ComputedEntity)
	require.Equal(t, "admin@example.com", record.ActorIdentifier)
	require.Equal(t, "Glazed Tile", record.NewValues["name"])
	require.Empty(t, record.OldValues)
}

func TestProductServiceCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminRequest(), dto.CreateProductRequest{Slug: "tile-a", Name: "Tile A"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminRequest(), dto.CreateProductRequest{Slug: "tile-a", Name: "Tile A Again"})
	require.ErrorIs(t, err, ErrProductSlugTaken)
}

func TestProductServiceCreateRejectsMissingCategory(t *testing.T) {
	svc, _, _ := newProductService(t)

	missing := uint(99)
	_, err := svc.Create(context.Background(), adminRequest(), dto.CreateProductRequest{
		Slug:       "tile-b",
		Name:       "Tile B",
		CategoryID: &missing,
	})
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductServiceUpdateRecordsChangedFields(t *testing.T) {
	svc, _, store := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminRequest(), dto.CreateProductRequest{Slug: "tile-c", Name: "Tile C"})
	require.NoError(t, err)

	newName := "Tile C Deluxe"
	_, err = svc.Update(ctx, adminRequest(), created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)

	record := store.last()
	require.Equal(t, audit.ActionUpdate, record.Action)
	require.Equal(t, []string{"name"}, []string(record.ChangedFields))
	require.Equal(t, "Tile C", record.OldValues["name"])
	require.Equal(t, "Tile C Deluxe", record.NewValues["name"])
}

func TestProductServiceNoopUpdateBecomesView(t *testing.T) {
	svc, _, store := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminRequest(), dto.CreateProductRequest{Slug: "tile-d", Name: "Tile D"})
	require.NoError(t, err)

	sameName := "Tile D"
	_, err = svc.Update(ctx, adminRequest(), created.ID, dto.UpdateProductRequest{Name: &sameName})
	require.NoError(t, err)

	record := store.last()
	require.Equal(t, audit.ActionView, record.Action)
	require.Contains(t, record.Description, "No changes detected")
	require.Empty(t, record.ChangedFields)
}

func TestProductServiceDeleteSnapshotsOldState(t *testing.T) {
	svc, repo, store := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminRequest(), dto.CreateProductRequest{Slug: "tile-e", Name: "Tile E"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, adminRequest(), created.ID))
	require.Empty(t, repo.products)

	record := store.last()
	require.Equal(t, audit.ActionDelete, record.Action)
	require.Equal(t, "Tile E", record.OldValues["name"])
	require.Empty(t, record.NewValues)
}

func TestProductServiceImportWritesSingleSummary(t *testing.T) {
	svc, _, store := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminRequest(), dto.CreateProductRequest{Slug: "existing", Name: "Existing"})
	require.NoError(t, err)
	recordsBefore := len(store.records)

	resp, err := svc.Import(ctx, adminRequest(), dto.ImportProductsRequest{Items: []dto.CreateProductRequest{
		{Slug: "import-a", Name: "Import A"},
		{Slug: "import-b", Name: "Import B"},
		{Slug: "existing", Name: "Duplicate"},
	}})
	require.NoError(t, err)
	require.Equal(t, 2, resp.SuccessCount)
	require.Equal(t, 1, resp.ErrorCount)
	require.Len(t, resp.Errors, 1)

	// One summary record for the whole batch, not one per item.
	require.Len(t, store.records, recordsBefore+1)
	record := store.last()
	require.Equal(t, audit.ActionImport, record.Action)
	require.Equal(t, true, record.ExtraData["bulk_operation"])
	require.Equal(t, 3, record.ExtraData["total_processed"])
	require.InDelta(t, 66.67, record.ExtraData["success_rate"], 0.001)
	require.Len(t, record.ExtraData["entity_ids"], 2)
}
