package repository

import (
	"context"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
)

// NotificationLogRepository defines the append-only dispatch audit log.
type NotificationLogRepository interface {
	Append(ctx context.Context, entry *entity.NotificationLogEntry) error
	FindByFlight(ctx context.Context, flightID, flightDate string, limit int) ([]*entity.NotificationLogEntry, error)
}
