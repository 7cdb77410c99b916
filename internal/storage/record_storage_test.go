package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"RieperLogistics_ScanLedger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func newRecord(barcode, worker, date string) models.Record {
	return models.Record{
		Barcode:     barcode,
		Spedition:   "DHL",
		Artikel:     "Palette",
		Hundert:     1,
		Mitarbeiter: worker,
		Date:        date,
		Timestamp:   date + "T08:00:00.000Z",
	}
}

func TestOpen_CreatesDatabaseFile(t *testing.T) {
	_, path := openTestStore(t)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	r := newRecord("0012345", "42", "2024-01-01")
	require.NoError(t, s1.AddRecord(ctx, &r))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.QueryByDateAndWorker(ctx, "2024-01-01", "42")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r, got[0])
}

func TestAddRecord_AssignsUniqueIDs(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	r1 := newRecord("A", "42", "2024-01-01")
	r2 := newRecord("B", "42", "2024-01-01")
	require.NoError(t, s.AddRecord(ctx, &r1))
	require.NoError(t, s.AddRecord(ctx, &r2))

	assert.NotZero(t, r1.ID)
	assert.NotEqual(t, r1.ID, r2.ID)
}

func TestQueryByDateAndWorker_FiltersExactly(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	r1 := newRecord("A", "42", "2024-01-01")
	other := newRecord("B", "7", "2024-01-01")
	r2 := newRecord("C", "42", "2024-01-01")
	older := newRecord("D", "42", "2023-12-31")
	for _, r := range []*models.Record{&r1, &other, &r2, &older} {
		require.NoError(t, s.AddRecord(ctx, r))
	}

	got, err := s.QueryByDateAndWorker(ctx, "2024-01-01", "42")
	require.NoError(t, err)
	assert.Equal(t, []models.Record{r1, r2}, got)
}

func TestQueryByWorker_IgnoresDate(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	older := newRecord("A", "42", "2023-12-31")
	other := newRecord("B", "7", "2024-01-01")
	today := newRecord("C", "42", "2024-01-01")
	for _, r := range []*models.Record{&older, &other, &today} {
		require.NoError(t, s.AddRecord(ctx, r))
	}

	got, err := s.QueryByWorker(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, []models.Record{older, today}, got)
}

func TestQueryByDateAndWorker_EmptyIsNotNil(t *testing.T) {
	s, _ := openTestStore(t)

	got, err := s.QueryByDateAndWorker(context.Background(), "2024-01-01", "42")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUpdateRecord_ReflectsNewFieldsAndKeepsDate(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	r := newRecord("A", "42", "2024-01-01")
	require.NoError(t, s.AddRecord(ctx, &r))

	edited := r
	edited.Artikel = "Karton"
	edited.Hundert = 9
	edited.Date = "2030-01-01"
	edited.Timestamp = ""
	require.NoError(t, s.UpdateRecord(ctx, &edited))
	assert.Equal(t, "2024-01-01", edited.Date)
	assert.Equal(t, r.Timestamp, edited.Timestamp)

	got, err := s.QueryByDateAndWorker(ctx, "2024-01-01", "42")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Karton", got[0].Artikel)
	assert.Equal(t, 9, got[0].Hundert)
}

func TestUpdateRecord_UnknownIDFails(t *testing.T) {
	s, _ := openTestStore(t)

	r := newRecord("A", "42", "2024-01-01")
	r.ID = 999
	err := s.UpdateRecord(context.Background(), &r)

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "update", storageErr.Op)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecord(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	r1 := newRecord("A", "42", "2024-01-01")
	r2 := newRecord("B", "42", "2024-01-01")
	require.NoError(t, s.AddRecord(ctx, &r1))
	require.NoError(t, s.AddRecord(ctx, &r2))

	require.NoError(t, s.DeleteRecord(ctx, r1.ID))
	require.NoError(t, s.DeleteRecord(ctx, 12345))

	got, err := s.QueryByDateAndWorker(ctx, "2024-01-01", "42")
	require.NoError(t, err)
	assert.Equal(t, []models.Record{r2}, got)

	_, err = s.GetRecord(ctx, r1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearRecords(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	for _, worker := range []string{"42", "7"} {
		r := newRecord("A", worker, "2024-01-01")
		require.NoError(t, s.AddRecord(ctx, &r))
	}
	require.NoError(t, s.ClearRecords(ctx))

	for _, worker := range []string{"42", "7"} {
		got, err := s.QueryByDateAndWorker(ctx, "2024-01-01", worker)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestClearRecords_IDsStayUnique(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	r1 := newRecord("A", "42", "2024-01-01")
	require.NoError(t, s.AddRecord(ctx, &r1))
	require.NoError(t, s.ClearRecords(ctx))

	r2 := newRecord("B", "42", "2024-01-01")
	require.NoError(t, s.AddRecord(ctx, &r2))
	assert.Greater(t, r2.ID, r1.ID)
}

func TestClosedStoreReturnsStorageError(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.Close())

	r := newRecord("A", "42", "2024-01-01")
	err := s.AddRecord(context.Background(), &r)

	var storageErr *StorageError
	assert.True(t, errors.As(err, &storageErr))
}
