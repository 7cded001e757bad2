package repository

import (
	"context"

	"arrivals-board/internal/domain/entity"
)

// AirlineRepository defines the interface for airline reference lookups,
// keyed by the carrier code prefix of a flight number.
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}
