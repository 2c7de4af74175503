package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type tileFixture struct {
	ID      int64
	Name    string
	Price   int
	Secret  string
	Gallery []string
}

func (f tileFixture) AuditEntity() Entity {
	id := f.ID
	return Entity{Type: "product", Qualified: "models.Product", ID: &id, Label: f.Name}
}

func (f tileFixture) AuditFields() []Field {
	return []Field{
		{Name: "name", Value: f.Name},
		{Name: "price", Value: f.Price},
		{Name: "api_token", Value: f.Secret, Sensitive: true},
		{Name: "gallery", Value: f.Gallery},
	}
}

func TestDiffIdenticalInstancesReturnsNothing(t *testing.T) {
	a := tileFixture{ID: 1, Name: "Tile A", Price: 100, Gallery: []string{"a.jpg"}}
	b := tileFixture{ID: 1, Name: "Tile A", Price: 100, Gallery: []string{"a.jpg"}}

	oldValues, newValues, changed := Diff(a, b, SnapshotOptions{})

	require.Empty(t, changed)
	require.Nil(t, oldValues)
	require.Nil(t, newValues)
}

func TestDiffReturnsExactlyChangedFields(t *testing.T) {
	before := tileFixture{ID: 1, Name: "Tile A", Price: 100}
	after := tileFixture{ID: 1, Name: "Tile A", Price: 120}

	oldValues, newValues, changed := Diff(before, after, SnapshotOptions{})

	require.Equal(t, []string{"price"}, changed)
	require.Equal(t, map[string]any{"price": 100}, oldValues)
	require.Equal(t, map[string]any{"price": 120}, newValues)
}

func TestDiffComparesCollectionsByValue(t *testing.T) {
	before := tileFixture{Gallery: []string{"a.jpg", "b.jpg"}}
	after := tileFixture{Gallery: []string{"a.jpg", "b.jpg"}}

	_, _, changed := Diff(before, after, SnapshotOptions{})
	require.Empty(t, changed, "equal slices in distinct backing arrays must not count as changed")

	after.Gallery = []string{"a.jpg"}
	_, _, changed = Diff(before, after, SnapshotOptions{})
	require.Equal(t, []string{"gallery"}, changed)
}

func TestDiffMasksSensitiveValues(t *testing.T) {
	before := tileFixture{Secret: "old-token"}
	after := tileFixture{Secret: "new-token"}

	oldValues, newValues, changed := Diff(before, after, SnapshotOptions{})

	require.Equal(t, []string{"api_token"}, changed)
	require.Equal(t, MaskToken, oldValues["api_token"])
	require.Equal(t, MaskToken, newValues["api_token"])
}

func TestDiffRespectsExclusions(t *testing.T) {
	before := tileFixture{Name: "Tile A", Price: 100}
	after := tileFixture{Name: "Tile B", Price: 120}

	oldValues, newValues, changed := Diff(before, after, SnapshotOptions{Exclude: []string{"price"}})

	require.Equal(t, []string{"name"}, changed)
	require.NotContains(t, oldValues, "price")
	require.NotContains(t, newValues, "price")
}

func TestDiffChangedFieldsFollowDeclarationOrder(t *testing.T) {
	before := tileFixture{Name: "Tile A", Price: 100, Secret: "x", Gallery: []string{"a"}}
	after := tileFixture{Name: "Tile B", Price: 120, Secret: "y", Gallery: []string{"b"}}

	_, _, changed := Diff(before, after, SnapshotOptions{})
	require.Equal(t, []string{"name", "price", "api_token", "gallery"}, changed)
}

func TestSnapshotMasksAndExcludes(t *testing.T) {
	fixture := tileFixture{Name: "Tile A", Price: 100, Secret: "token"}

	values := Snapshot(fixture, SnapshotOptions{Exclude: []string{"gallery"}})

	require.Equal(t, "Tile A", values["name"])
	require.Equal(t, MaskToken, values["api_token"])
	require.NotContains(t, values, "gallery")

	plain := Snapshot(fixture, SnapshotOptions{Plaintext: true})
	require.Equal(t, "token", plain["api_token"])
}
