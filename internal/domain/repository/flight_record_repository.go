package repository

import (
	"context"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
)

// FlightRecordRepository defines storage for arrivals-board snapshots,
// keyed by (flight identifier, flight date).
type FlightRecordRepository interface {
	// FindByDates bulk-loads every stored record whose flight date is in
	// the given set. One query per batch, not one per flight.
	FindByDates(ctx context.Context, dates []string) ([]*entity.FlightRecord, error)
	// Upsert fully replaces the stored fields for the record's key.
	// Re-upserting identical data is a no-op in effect.
	Upsert(ctx context.Context, record *entity.FlightRecord) error
}
