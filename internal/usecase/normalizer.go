package usecase

import (
	"context"
	"sort"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/internal/domain/repository"
	"arrivals-board/pkg/logger"

	"github.com/google/uuid"
)

// Normalizer turns raw provider records into canonical Flight entities.
// An airline repository is optional; when present it backfills airline
// names the provider left empty.
type Normalizer struct {
	airlineRepo repository.AirlineRepository
	logger      logger.Logger
}

// NewNormalizer creates a new normalizer
func NewNormalizer(airlineRepo repository.AirlineRepository, logger logger.Logger) *Normalizer {
	return &Normalizer{
		airlineRepo: airlineRepo,
		logger:      logger,
	}
}

// NormalizeArrivals validates and repairs raw records for one target date.
// Repairs applied per record: EstimatedTime falls back to ScheduledTime,
// Date is stamped with the target date regardless of provider output, and
// a missing ID gets a generated one. Unrecognized status strings are kept
// as-is. The result is sorted ascending by ScheduledTime; lexical
// comparison is valid because the format is fixed-width and zero-padded.
func (n *Normalizer) NormalizeArrivals(ctx context.Context, raw []entity.RawArrival, date string) []entity.Flight {
	flights := make([]entity.Flight, 0, len(raw))

	for _, record := range raw {
		flight := entity.Flight{
			ID:            record.ID,
			FlightNumber:  record.FlightNumber,
			Airline:       record.Airline,
			Origin:        record.Origin,
			ScheduledTime: record.ScheduledTime,
			EstimatedTime: record.EstimatedTime,
			Status:        entity.FlightStatus(record.Status),
			Aircraft:      record.Aircraft,
			Terminal:      record.Terminal,
			Date:          date,
		}

		if flight.EstimatedTime == "" {
			flight.EstimatedTime = flight.ScheduledTime
		}
		if flight.ID == "" {
			flight.ID = uuid.NewString()
		}

		n.enrichAirline(ctx, &flight)
		flights = append(flights, flight)
	}

	sort.Slice(flights, func(i, j int) bool {
		return flights[i].ScheduledTime < flights[j].ScheduledTime
	})

	return flights
}

// enrichAirline backfills an empty airline name from the reference table.
// A failed lookup leaves the field empty.
func (n *Normalizer) enrichAirline(ctx context.Context, flight *entity.Flight) {
	if n.airlineRepo == nil || flight.Airline != "" {
		return
	}

	code := flight.CarrierCode()
	if code == "" {
		return
	}

	airline, err := n.airlineRepo.GetByCode(ctx, code)
	if err != nil {
		n.logger.Debug("Airline lookup failed", "code", code, "error", err)
		return
	}
	flight.Airline = airline.Name
}
