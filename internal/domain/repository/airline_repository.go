package repository

import (
	"context"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
)

// AirlineRepository defines the interface for airline reference lookups
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}
