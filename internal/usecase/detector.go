package usecase

import (
	"context"
	"fmt"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/repository"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
)

// ChangeDetector compares a deduplicated batch against stored state
type ChangeDetector struct {
	flightRepo repository.FlightRecordRepository
	logger     logger.Logger
}

// NewChangeDetector creates a new change detector
func NewChangeDetector(flightRepo repository.FlightRecordRepository, logger logger.Logger) *ChangeDetector {
	return &ChangeDetector{
		flightRepo: flightRepo,
		logger:     logger,
	}
}

// Detect returns one StatusChange per flight whose stored status
// differs from the newly parsed one. First sightings never fire. The
// read is a single bulk query over the batch's distinct dates and must
// run before the batch is upserted.
func (d *ChangeDetector) Detect(ctx context.Context, records []*entity.FlightRecord) ([]entity.StatusChange, error) {
	if len(records) == 0 {
		return nil, nil
	}

	stored, err := d.flightRepo.FindByDates(ctx, distinctDates(records))
	if err != nil {
		return nil, fmt.Errorf("failed to read stored flights: %w", err)
	}

	byKey := make(map[string]*entity.FlightRecord, len(stored))
	for _, rec := range stored {
		byKey[rec.Key()] = rec
	}

	var changes []entity.StatusChange
	for _, rec := range records {
		prev, ok := byKey[rec.Key()]
		if !ok || prev.Status == rec.Status {
			continue
		}
		d.logger.Info("Status transition detected",
			"flight", rec.FlightID,
			"date", rec.FlightDate,
			"oldStatus", prev.Status,
			"newStatus", rec.Status)
		changes = append(changes, entity.StatusChange{
			Record:    *rec,
			OldStatus: prev.Status,
			NewStatus: rec.Status,
		})
	}

	return changes, nil
}

func distinctDates(records []*entity.FlightRecord) []string {
	seen := make(map[string]bool, len(records))
	var dates []string
	for _, rec := range records {
		if !seen[rec.FlightDate] {
			seen[rec.FlightDate] = true
			dates = append(dates, rec.FlightDate)
		}
	}
	return dates
}
