package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/internal/domain/repository"
	"arrivals-board/pkg/logger"
	"arrivals-board/pkg/metrics"
)

// User-facing error messages. The configuration message is actionable and
// distinct; everything else collapses into the generic one with the raw
// error logged for diagnostics only.
const (
	msgGenericFailure = "Не удалось загрузить данные."
	msgMissingAPIKey  = "Ошибка: API_KEY не найден. Убедитесь, что ключ настроен в окружении."
)

// dateLayout is the calendar date format stamped onto normalized flights.
const dateLayout = "2006-01-02"

// BoardSync owns the two day slots of the arrivals board and the polling
// loop that keeps them fresh. Each sync cycle fetches today and tomorrow
// concurrently and replaces both slots wholesale only when both fetches
// succeed; on any failure the previously displayed data is kept.
//
// Overlapping triggers (manual refresh during an in-flight timer cycle)
// are not serialized; whichever cycle completes last wins. Acceptable at
// a 60-second cadence.
type BoardSync struct {
	provider   repository.ScheduleProvider
	normalizer *Normalizer
	tracker    *DelayTracker
	logger     logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time

	mu       sync.Mutex
	today    entity.DaySchedule
	tomorrow entity.DaySchedule
	loading  bool
	errMsg   string
}

// NewBoardSync creates a new board synchronizer
func NewBoardSync(provider repository.ScheduleProvider, normalizer *Normalizer, tracker *DelayTracker, logger logger.Logger, m *metrics.Metrics) *BoardSync {
	return &BoardSync{
		provider:   provider,
		normalizer: normalizer,
		tracker:    tracker,
		logger:     logger,
		metrics:    m,
		now:        time.Now,
	}
}

// dayFetch carries the outcome of one per-date fetch within a cycle.
type dayFetch struct {
	date    string
	flights []entity.Flight
	err     error
}

// TriggerSync runs one sync cycle: both day slots fetched concurrently,
// applied atomically together only if both succeed. Safe to call from the
// timer loop and from a manual refresh at the same time.
func (b *BoardSync) TriggerSync(ctx context.Context) {
	b.mu.Lock()
	b.loading = true
	b.errMsg = ""
	b.mu.Unlock()

	todayDate := b.now()
	tomorrowDate := todayDate.AddDate(0, 0, 1)

	results := make([]dayFetch, 2)
	var wg sync.WaitGroup
	for i, date := range []time.Time{todayDate, tomorrowDate} {
		wg.Add(1)
		go func(slot int, target time.Time) {
			defer wg.Done()
			results[slot] = b.fetchDay(ctx, target)
		}(i, date)
	}
	wg.Wait()

	if err := errors.Join(results[0].err, results[1].err); err != nil {
		b.failCycle(results)
		return
	}

	b.mu.Lock()
	b.today = entity.DaySchedule{Date: results[0].date, Flights: results[0].flights}
	b.tomorrow = entity.DaySchedule{Date: results[1].date, Flights: results[1].flights}
	b.loading = false
	b.errMsg = ""
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.SyncCycles.WithLabelValues("success").Inc()
		b.metrics.FlightsOnBoard.WithLabelValues("today").Set(float64(len(results[0].flights)))
		b.metrics.FlightsOnBoard.WithLabelValues("tomorrow").Set(float64(len(results[1].flights)))
	}

	b.logger.Info("Sync cycle completed",
		"todayFlights", len(results[0].flights),
		"tomorrowFlights", len(results[1].flights))

	// Only today's list is delay-notified; tomorrow is not same-day relevant.
	b.tracker.NotifyDelays(ctx, results[0].flights)
}

// fetchDay fetches and normalizes one day slot.
func (b *BoardSync) fetchDay(ctx context.Context, target time.Time) dayFetch {
	date := target.Format(dateLayout)

	raw, err := b.provider.FetchArrivals(ctx, target)
	if err != nil {
		return dayFetch{date: date, err: err}
	}

	return dayFetch{
		date:    date,
		flights: b.normalizer.NormalizeArrivals(ctx, raw, date),
	}
}

// failCycle maps component errors to the user-facing error state. Slots
// keep the previously displayed data; stale-but-present beats clearing.
func (b *BoardSync) failCycle(results []dayFetch) {
	msg := msgGenericFailure
	for _, r := range results {
		if r.err == nil {
			continue
		}
		b.logger.Error("Day fetch failed", "date", r.date, "error", r.err)
		if errors.Is(r.err, entity.ErrConfiguration) {
			msg = msgMissingAPIKey
		}
	}

	b.mu.Lock()
	b.loading = false
	b.errMsg = msg
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.SyncCycles.WithLabelValues("failed").Inc()
		b.metrics.ErrorsCount.WithLabelValues("sync").Inc()
	}
}

// Start runs the polling loop: one immediate cycle, then one per tick
// until the context is cancelled.
func (b *BoardSync) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	b.TriggerSync(ctx)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Board sync stopped")
			return
		case <-ticker.C:
			b.logger.Debug("Auto-refreshing arrivals board")
			b.TriggerSync(ctx)
		}
	}
}

// Snapshot returns a copy of the current board state for the presentation
// boundary. Mutating the copy does not affect internal state.
func (b *BoardSync) Snapshot() entity.Board {
	b.mu.Lock()
	defer b.mu.Unlock()

	return entity.Board{
		Today:    copySchedule(b.today),
		Tomorrow: copySchedule(b.tomorrow),
		Loading:  b.loading,
		Error:    b.errMsg,
	}
}

func copySchedule(s entity.DaySchedule) entity.DaySchedule {
	out := entity.DaySchedule{Date: s.Date}
	if s.Flights != nil {
		out.Flights = make([]entity.Flight, len(s.Flights))
		copy(out.Flights, s.Flights)
	}
	return out
}
