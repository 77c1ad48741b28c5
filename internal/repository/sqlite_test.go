package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutAssignsSuggestedName(t *testing.T) {
	store := openTestStore(t)
	name, err := store.Put(context.Background(), "form_2307", "DUMMY 2 - ROBERT", []byte(`{"form_no":"2307"}`), "DUMMY 2 - ROBERT.pdf")
	require.NoError(t, err)
	assert.Equal(t, "DUMMY 2 - ROBERT", name)
}

func TestPutSuffixesOnCollision(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Put(ctx, "form_2307", "BEA SAMPLE", []byte(`{"n":1}`), "BEA SAMPLE.pdf")
	require.NoError(t, err)
	second, err := store.Put(ctx, "form_2307", "BEA SAMPLE", []byte(`{"n":2}`), "BEA SAMPLE.pdf")
	require.NoError(t, err)
	third, err := store.Put(ctx, "form_2307", "BEA SAMPLE", []byte(`{"n":3}`), "BEA SAMPLE.pdf")
	require.NoError(t, err)

	assert.Equal(t, "BEA SAMPLE", first)
	assert.Equal(t, "BEA SAMPLE(1)", second)
	assert.Equal(t, "BEA SAMPLE(2)", third)
}

func TestPutSameNameDifferentCollections(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a, err := store.Put(ctx, "form_2307", "SAMPLE", []byte(`{}`), "")
	require.NoError(t, err)
	b, err := store.Put(ctx, "service_invoice", "SAMPLE", []byte(`{}`), "")
	require.NoError(t, err)

	assert.Equal(t, "SAMPLE", a)
	assert.Equal(t, "SAMPLE", b)
}

func TestListReturnsInsertionOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "form_2307", "first", []byte(`{"n":1}`), "first.pdf")
	require.NoError(t, err)
	_, err = store.Put(ctx, "form_2307", "second", []byte(`{"n":2}`), "second.pdf")
	require.NoError(t, err)

	records, err := store.List(ctx, "form_2307")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Name)
	assert.Equal(t, "second", records[1].Name)
	assert.Equal(t, "first.pdf", records[0].PDFName)
	assert.JSONEq(t, `{"n":2}`, string(records[1].Payload))

	empty, err := store.List(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
