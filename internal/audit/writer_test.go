package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	records []*Record
	err     error
}

func (m *memoryStore) Create(ctx context.Context, record *Record) error {
	if m.err != nil {
		return m.err
	}
	record.ID = uint(len(m.records) + 1)
	record.CreatedAt = time.Now()
	m.records = append(m.records, record)
	return nil
}

func testWriter() (*Writer, *memoryStore) {
	store := &memoryStore{}
	return NewWriter(store, zerolog.Nop()), store
}

func adminRequest() Request {
	return Request{
		Principal:  &Principal{ID: 3, Email: "admin@example.com", FullName: "Site Admin"},
		RemoteAddr: "10.1.2.3",
		UserAgent:  "test-agent/1.0",
	}
}

func TestLogChangeCreateSnapshotsNewState(t *testing.T) {
	writer, store := testWriter()

	record, err := writer.LogChange(context.Background(), adminRequest(), ActionCreate,
		tileFixture{ID: 42, Name: "Tile A", Price: 100}, ChangeOptions{})
	require.NoError(t, err)

	require.Len(t, store.records, 1)
	require.Equal(t, ActionCreate, record.Action)
	require.Equal(t, "product", record.Entity)
	require.Equal(t, "models.Product", record.ComputedEntity)
	require.NotNil(t, record.EntityID)
	require.Equal(t, int64(42), *record.EntityID)
	require.Equal(t, "Tile A", record.NewValues["name"])
	require.Nil(t, record.OldValues)
	require.Nil(t, record.ChangedFields)
	require.Equal(t, "Created product: Tile A", record.Description)
	require.Equal(t, "admin@example.com", record.ActorIdentifier)
	require.Equal(t, "10.1.2.3", record.IPAddress)
	require.Equal(t, "test-agent/1.0", record.UserAgent)
	require.NotNil(t, record.ExtraData, "extra data is always present")
}

func TestLogChangeDeleteSnapshotsOldState(t *testing.T) {
	writer, _ := testWriter()

	record, err := writer.LogChange(context.Background(), adminRequest(), ActionDelete,
		tileFixture{ID: 9, Name: "Tile B", Price: 50}, ChangeOptions{})
	require.NoError(t, err)

	require.Equal(t, 50, record.OldValues["price"])
	require.Nil(t, record.NewValues)
	require.Equal(t, "Deleted product: Tile B", record.Description)
}

func TestLogChangeUpdateRecordsPartialDelta(t *testing.T) {
	writer, _ := testWriter()

	before := tileFixture{ID: 1, Name: "Tile A", Price: 100}
	after := tileFixture{ID: 1, Name: "Tile A", Price: 120}

	record, err := writer.LogChange(context.Background(), adminRequest(), ActionUpdate, after, ChangeOptions{Old: before})
	require.NoError(t, err)

	require.Equal(t, ActionUpdate, record.Action)
	require.Equal(t, []string{"price"}, []string(record.ChangedFields))
	require.Equal(t, map[string]any{"price": 100}, map[string]any(record.OldValues))
	require.Equal(t, map[string]any{"price": 120}, map[string]any(record.NewValues))
	require.Equal(t, "Updated product: Tile A (1 fields modified)", record.Description)
}

func TestLogChangeNoOpUpdateDowngradesToView(t *testing.T) {
	writer, store := testWriter()

	same := tileFixture{ID: 1, Name: "Tile A", Price: 100}

	record, err := writer.LogChange(context.Background(), adminRequest(), ActionUpdate, same, ChangeOptions{Old: same})
	require.NoError(t, err)

	require.Len(t, store.records, 1, "a no-op update is recorded, not dropped")
	require.Equal(t, ActionView, record.Action)
	require.Nil(t, record.OldValues)
	require.Nil(t, record.NewValues)
	require.Nil(t, record.ChangedFields)
	require.Equal(t, "No changes detected for product: Tile A", record.Description)
}

func TestLogChangeUpdateRequiresOldInstance(t *testing.T) {
	writer, store := testWriter()

	_, err := writer.LogChange(context.Background(), adminRequest(), ActionUpdate,
		tileFixture{ID: 1}, ChangeOptions{})

	require.ErrorIs(t, err, ErrMissingOldInstance)
	require.Empty(t, store.records, "nothing may be persisted on validation failure")
}

func TestLogChangeRejectsUnknownAction(t *testing.T) {
	writer, store := testWriter()

	_, err := writer.LogChange(context.Background(), adminRequest(), Action("obliterate"),
		tileFixture{ID: 1}, ChangeOptions{})

	require.ErrorIs(t, err, ErrInvalidAction)
	require.Empty(t, store.records)
}

func TestLogChangePropagatesPersistenceFailure(t *testing.T) {
	store := &memoryStore{err: errors.New("connection reset")}
	writer := NewWriter(store, zerolog.Nop())

	_, err := writer.LogChange(context.Background(), adminRequest(), ActionCreate, tileFixture{ID: 1}, ChangeOptions{})
	require.EqualError(t, err, "connection reset")
}

func TestLogChangeGuestActorThroughFallbackChain(t *testing.T) {
	writer, _ := testWriter()

	req := Request{ForwardedFor: "198.51.100.7", UserAgent: "bot/2"}
	record, err := writer.LogChange(context.Background(), req, ActionCreate,
		tileFixture{ID: 4, Name: "Tile D"}, ChangeOptions{Guest: &GuestHint{Email: "buyer@example.com", Name: "Buyer"}})
	require.NoError(t, err)

	require.Equal(t, ActorGuest, record.ActorType)
	require.Equal(t, "buyer@example.com", record.ActorIdentifier)
	require.Equal(t, "Buyer", record.ActorName)
	require.Equal(t, "buyer@example.com", record.ActorMetadata["email"])
}

func TestLogChangeMasksSensitiveFieldsOnCreate(t *testing.T) {
	writer, _ := testWriter()

	record, err := writer.LogChange(context.Background(), adminRequest(), ActionCreate,
		tileFixture{ID: 2, Name: "Tile C", Secret: "plaintext-token"}, ChangeOptions{})
	require.NoError(t, err)

	require.Equal(t, MaskToken, record.NewValues["api_token"])
	require.NotContains(t, record.NewValues, "plaintext-token")
}

func TestLogGuestGeneratesDescription(t *testing.T) {
	writer, _ := testWriter()

	id := int64(11)
	record, err := writer.LogGuest(context.Background(), Request{RemoteAddr: "10.9.9.9"}, ActionDownload, GuestEvent{
		Entity:     "brochure",
		EntityID:   &id,
		EntityName: "Spring Catalogue",
		ExtraData:  map[string]any{"file_type": "pdf"},
	})
	require.NoError(t, err)

	require.Equal(t, "Download brochure: Spring Catalogue", record.Description)
	require.Equal(t, DefaultEntity, record.ComputedEntity)
	require.Equal(t, "10.9.9.9", record.ActorIdentifier)
	require.Equal(t, "pdf", record.ExtraData["file_type"])
}

func TestLogBulkWritesSingleSummaryRecord(t *testing.T) {
	writer, store := testWriter()

	instances := []Snapshotter{
		tileFixture{ID: 1, Name: "Tile A"},
		tileFixture{ID: 2, Name: "Tile B"},
		tileFixture{ID: 3, Name: "Tile C"},
	}

	record, err := writer.LogBulk(context.Background(), adminRequest(), ActionImport, instances, BulkSummary{
		OperationName: "CSV product import",
		SuccessCount:  2,
		ErrorCount:    1,
	})
	require.NoError(t, err)

	require.Len(t, store.records, 1, "bulk logging writes exactly one record")
	require.Equal(t, "product", record.Entity)
	require.Equal(t, 3, record.ExtraData["total_processed"])
	require.Equal(t, 2, record.ExtraData["success_count"])
	require.Equal(t, 1, record.ExtraData["error_count"])
	require.InDelta(t, 66.67, record.ExtraData["success_rate"].(float64), 0.001)
	require.Equal(t, []any{int64(1), int64(2), int64(3)}, record.ExtraData["entity_ids"])
	require.Equal(t, "Bulk import operation: CSV product import (2 successful, 1 failed)", record.Description)
}

func TestLogBulkRejectsEmptyInstanceList(t *testing.T) {
	writer, store := testWriter()

	_, err := writer.LogBulk(context.Background(), adminRequest(), ActionCreate, nil, BulkSummary{OperationName: "noop"})

	require.ErrorIs(t, err, ErrNoInstances)
	require.Empty(t, store.records)
}

func TestActionVerbFallback(t *testing.T) {
	require.Equal(t, "Created", ActionCreate.Verb())
	require.Equal(t, "Logged out", ActionLogout.Verb())
	require.Equal(t, "No change", ActionNoChange.Verb())
	require.Equal(t, "Publish", ActionPublish.Verb())
}
