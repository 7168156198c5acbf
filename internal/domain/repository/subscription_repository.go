package repository

import (
	"context"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
)

// SubscriptionRepository defines storage for flight subscriptions.
// The dispatcher consumes it read-only; writes come from user actions.
type SubscriptionRepository interface {
	FindByFlight(ctx context.Context, flightID, flightDate string) ([]*entity.Subscription, error)
	FindByUser(ctx context.Context, userID string) ([]*entity.Subscription, error)
	Save(ctx context.Context, sub *entity.Subscription) error
	// ClearPushToken removes the stored push token from every
	// subscription owned by the user. Called when the push gateway
	// reports the token gone, so stale destinations are never retried.
	ClearPushToken(ctx context.Context, userID string) error
}
