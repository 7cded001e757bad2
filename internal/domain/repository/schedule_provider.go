package repository

import (
	"context"
	"time"

	"arrivals-board/internal/domain/entity"
)

// ScheduleProvider defines the interface for fetching raw arrival records
// for one target calendar date from the external data provider. Ordering
// of the returned records is not trusted; the normalizer sorts them.
type ScheduleProvider interface {
	FetchArrivals(ctx context.Context, date time.Time) ([]entity.RawArrival, error)
}
