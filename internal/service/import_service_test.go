package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/features"
	"loan-scorer/internal/models"
	"loan-scorer/internal/query"
	"loan-scorer/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newImporter(src RecordSource, store RequestStore) *ImportService {
	return NewImportService(src, store, newScorer(), 3, metrics.NewManager(), zap.NewNop())
}

func storedIDs(t *testing.T, s *memStore) []int64 {
	t.Helper()
	rows, err := s.List(context.Background(), query.Filter{})
	require.NoError(t, err)
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.RequestID
	}
	return out
}

func TestImportInsertsNewRecordsInSourceOrder(t *testing.T) {
	var records []features.Record
	for i := 10; i > 0; i-- {
		records = append(records, rawRequest(int64(i), float64(i)*2000, "M"))
	}
	store := newMemStore()

	resp, err := newImporter(staticSource{records: records}, store).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, resp.Imported)
	assert.Equal(t, 0, resp.Skipped)
	assert.Empty(t, resp.Failed)
	assert.NotEmpty(t, resp.ImportID)
	assert.Equal(t, []int64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, storedIDs(t, store))

	rows, _ := store.List(context.Background(), query.Filter{})
	for _, r := range rows {
		if r.AmountRequested < 10000 {
			assert.Equal(t, 0.8123456789, r.ApprovalProbability)
		} else {
			assert.Equal(t, 0.2, r.ApprovalProbability)
		}
	}
}

func TestImportIsIdempotent(t *testing.T) {
	records := []features.Record{rawRequest(1, 1000, "M"), rawRequest(2, 2000, "F")}
	store := newMemStore()
	svc := newImporter(staticSource{records: records}, store)

	first, err := svc.Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := svc.Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, []int64{1, 2}, storedIDs(t, store))
}

func TestImportSkipsDuplicatesWithinBatch(t *testing.T) {
	first := rawRequest(5, 1000, "M")
	dup := rawRequest(5, 99000, "F")
	store := newMemStore()

	resp, err := newImporter(staticSource{records: []features.Record{first, dup}}, store).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
	rows, _ := store.List(context.Background(), query.Filter{})
	require.Len(t, rows, 1)
	assert.Equal(t, "M", rows[0].Sex)
}

func TestImportIsolatesRecordFailures(t *testing.T) {
	missingID := rawRequest(0, 1000, "M")
	delete(missingID, features.FieldRequestID)

	missingNumeric := rawRequest(2, 1000, "M")
	delete(missingNumeric, features.FieldCreditScore)

	store := newMemStore()
	store.failIDs[3] = true
	store.racedIDs[4] = true

	records := []features.Record{
		missingID,
		rawRequest(1, 1000, "M"),
		missingNumeric,
		rawRequest(3, 1000, "F"),
		rawRequest(4, 1000, "F"),
		rawRequest(6, 1000, "F"),
	}

	resp, err := newImporter(staticSource{records: records}, store).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 1, resp.Skipped, "a conflict on insert counts as already present")
	require.Len(t, resp.Failed, 3)

	assert.Equal(t, 0, resp.Failed[0].Index)
	assert.Nil(t, resp.Failed[0].RequestID)

	assert.Equal(t, 2, resp.Failed[1].Index)
	assert.Equal(t, int64(2), *resp.Failed[1].RequestID)
	assert.Contains(t, resp.Failed[1].Error, features.FieldCreditScore)

	assert.Equal(t, int64(3), *resp.Failed[2].RequestID)

	assert.Equal(t, []int64{1, 6}, storedIDs(t, store))
}

func TestImportUpstreamFailureWritesNothing(t *testing.T) {
	store := newMemStore()
	src := staticSource{err: fmt.Errorf("status 500: %w", apperrors.ErrUpstream)}

	resp, err := newImporter(src, store).Import(context.Background())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, 0, store.inserts)
}

type failingExists struct{ *memStore }

func (failingExists) Exists(context.Context, int64) (bool, error) {
	return false, assert.AnError
}

func TestImportAbortsWhenStoreUnavailable(t *testing.T) {
	store := newMemStore()
	src := staticSource{records: []features.Record{rawRequest(1, 1000, "M")}}

	_, err := newImporter(src, failingExists{store}).Import(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, store.inserts)
}

func TestImportCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newMemStore()
	src := staticSource{records: []features.Record{rawRequest(1, 1000, "M")}}

	_, err := newImporter(src, store).Import(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.inserts)
}

func TestImportStoresProbabilityAlongsideRawFields(t *testing.T) {
	store := newMemStore()
	rec := rawRequest(42, 3000, "F")

	_, err := newImporter(staticSource{records: []features.Record{rec}}, store).Import(context.Background())
	require.NoError(t, err)

	want, err := models.NewFinancingRequest(rec, 0.8123456789)
	require.NoError(t, err)
	rows, _ := store.List(context.Background(), query.Filter{})
	require.Len(t, rows, 1)
	assert.Equal(t, *want, rows[0])
}

func TestImportKeepsDistinctLargeIDs(t *testing.T) {
	first := rawRequest(1, 1000, "M")
	first[features.FieldRequestID] = json.Number("9007199254740992")
	second := rawRequest(1, 2000, "F")
	second[features.FieldRequestID] = json.Number("9007199254740993")
	store := newMemStore()

	resp, err := newImporter(staticSource{records: []features.Record{first, second}}, store).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 0, resp.Skipped)
	assert.Equal(t, []int64{9007199254740992, 9007199254740993}, storedIDs(t, store))
}
