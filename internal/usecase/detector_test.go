package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFlightRepo is an in-memory FlightRecordRepository keyed like the
// real store.
type fakeFlightRepo struct {
	records   map[string]*entity.FlightRecord
	findErr   error
	upsertErr error
	upserts   int
}

func newFakeFlightRepo() *fakeFlightRepo {
	return &fakeFlightRepo{records: make(map[string]*entity.FlightRecord)}
}

func (r *fakeFlightRepo) FindByDates(ctx context.Context, dates []string) ([]*entity.FlightRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	inSet := make(map[string]bool, len(dates))
	for _, d := range dates {
		inSet[d] = true
	}
	var out []*entity.FlightRecord
	for _, rec := range r.records {
		if inSet[rec.FlightDate] {
			copy := *rec
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeFlightRepo) Upsert(ctx context.Context, record *entity.FlightRecord) error {
	r.upserts++
	if r.upsertErr != nil {
		return r.upsertErr
	}
	copy := *record
	r.records[record.Key()] = &copy
	return nil
}

func record(flightID, date, status string) *entity.FlightRecord {
	return &entity.FlightRecord{
		FlightID:    flightID,
		AirlineCode: flightID[:2],
		FlightDate:  date,
		Status:      status,
	}
}

func TestDetect_NoChangeOnFirstSighting(t *testing.T) {
	repo := newFakeFlightRepo()
	detector := NewChangeDetector(repo, logger.NewNopLogger())

	changes, err := detector.Detect(context.Background(), []*entity.FlightRecord{
		record("Q2 707", "2025-01-25", "ON TIME"),
	})
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDetect_NoChangeWhenStatusEqual(t *testing.T) {
	repo := newFakeFlightRepo()
	require.NoError(t, repo.Upsert(context.Background(), record("Q2 707", "2025-01-25", "ON TIME")))
	detector := NewChangeDetector(repo, logger.NewNopLogger())

	changes, err := detector.Detect(context.Background(), []*entity.FlightRecord{
		record("Q2 707", "2025-01-25", "ON TIME"),
	})
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDetect_EmitsTransitionOnStatusDifference(t *testing.T) {
	ctx := context.Background()
	repo := newFakeFlightRepo()
	require.NoError(t, repo.Upsert(ctx, record("Q2 707", "2025-01-25", "DELAYED")))
	require.NoError(t, repo.Upsert(ctx, record("UL 115", "2025-01-25", "ON TIME")))
	detector := NewChangeDetector(repo, logger.NewNopLogger())

	changes, err := detector.Detect(ctx, []*entity.FlightRecord{
		record("Q2 707", "2025-01-25", "LANDED"),
		record("UL 115", "2025-01-25", "ON TIME"),
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, "Q2 707", changes[0].Record.FlightID)
	assert.Equal(t, "DELAYED", changes[0].OldStatus)
	assert.Equal(t, "LANDED", changes[0].NewStatus)
}

func TestDetect_SameFlightDifferentDateIsFirstSighting(t *testing.T) {
	ctx := context.Background()
	repo := newFakeFlightRepo()
	require.NoError(t, repo.Upsert(ctx, record("Q2 707", "2025-01-24", "LANDED")))
	detector := NewChangeDetector(repo, logger.NewNopLogger())

	changes, err := detector.Detect(ctx, []*entity.FlightRecord{
		record("Q2 707", "2025-01-25", "ON TIME"),
	})
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDetect_PropagatesReadFailure(t *testing.T) {
	repo := newFakeFlightRepo()
	repo.findErr = errors.New("store unavailable")
	detector := NewChangeDetector(repo, logger.NewNopLogger())

	_, err := detector.Detect(context.Background(), []*entity.FlightRecord{
		record("Q2 707", "2025-01-25", "ON TIME"),
	})
	assert.Error(t, err)
}

func TestDetect_EmptyBatch(t *testing.T) {
	detector := NewChangeDetector(newFakeFlightRepo(), logger.NewNopLogger())
	changes, err := detector.Detect(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
