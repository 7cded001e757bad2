package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/internal/domain/repository"
	"arrivals-board/pkg/logger"
	"arrivals-board/pkg/metrics"
	"arrivals-board/pkg/utils"
)

// notificationIcon is the icon identifier attached to every delay alert.
const notificationIcon = "favicon.ico"

// DelayTracker emits a notification for each delayed flight at most once
// per flight ID for the lifetime of the session. The notified set is
// created empty at session start and only grows; it is never cleared.
type DelayTracker struct {
	notifier repository.NotifierRepository
	journal  repository.NotificationJournalRepository
	logger   logger.Logger
	metrics  *metrics.Metrics

	mu         sync.Mutex
	notified   map[string]struct{}
	permission entity.PermissionState
}

// NewDelayTracker creates a new delay tracker. The journal is optional.
func NewDelayTracker(notifier repository.NotifierRepository, journal repository.NotificationJournalRepository, logger logger.Logger, m *metrics.Metrics) *DelayTracker {
	return &DelayTracker{
		notifier:   notifier,
		journal:    journal,
		logger:     logger,
		metrics:    m,
		notified:   make(map[string]struct{}),
		permission: entity.PermissionDefault,
	}
}

// RequestPermission resolves the notification permission once at session
// start. Meant to be called from a goroutine so startup never blocks on
// the push service.
func (t *DelayTracker) RequestPermission(ctx context.Context) {
	state := t.notifier.RequestPermission(ctx)

	t.mu.Lock()
	t.permission = state
	t.mu.Unlock()
}

// NotifyDelays dispatches alerts for newly delayed flights in a freshly
// fetched today list. Dispatch failures are logged and swallowed; the
// flight stays un-notified so the next cycle retries.
func (t *DelayTracker) NotifyDelays(ctx context.Context, flights []entity.Flight) {
	for i := range flights {
		flight := &flights[i]
		if !flight.IsDelayed() {
			continue
		}
		t.notifyOnce(ctx, flight)
	}
}

// notifyOnce sends one delay alert unless the flight was already notified
// or permission is not granted.
func (t *DelayTracker) notifyOnce(ctx context.Context, flight *entity.Flight) {
	t.mu.Lock()
	granted := t.permission == entity.PermissionGranted
	_, seen := t.notified[flight.ID]
	t.mu.Unlock()

	if !granted || seen {
		return
	}

	delay, delayText := t.describeDelay(flight)

	notification := &entity.Notification{
		Title: fmt.Sprintf("Задержка рейса %s", flight.FlightNumber),
		Body: fmt.Sprintf("Рейс из %s задерживается. Время ожидания: %s. Ожидаемое прибытие: %s",
			flight.Origin, delayText, flight.EstimatedTime),
		Icon: notificationIcon,
	}

	if err := t.notifier.Send(ctx, notification); err != nil {
		// Not marked as notified, so a future cycle may retry.
		t.logger.Warn("Delay notification failed",
			"flightId", flight.ID,
			"flightNumber", flight.FlightNumber,
			"error", err)
		if t.metrics != nil {
			t.metrics.ErrorsCount.WithLabelValues("notify").Inc()
		}
		return
	}

	t.mu.Lock()
	t.notified[flight.ID] = struct{}{}
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.NotificationsSent.Inc()
	}
	t.logger.Info("Delay notification sent",
		"flightId", flight.ID,
		"flightNumber", flight.FlightNumber,
		"delay", delayText)

	t.recordJournal(ctx, flight, delay, notification)
}

// describeDelay computes the delay duration for the notification body.
// A malformed time string degrades to an "unknown" placeholder instead of
// dropping the alert.
func (t *DelayTracker) describeDelay(flight *entity.Flight) (int, string) {
	delay, err := utils.DelayMinutes(flight.ScheduledTime, flight.EstimatedTime)
	if err != nil {
		t.logger.Warn("Cannot compute delay",
			"flightNumber", flight.FlightNumber,
			"scheduled", flight.ScheduledTime,
			"estimated", flight.EstimatedTime,
			"error", err)
		return 0, "неизвестно"
	}

	if text := utils.FormatDelay(delay); text != "" {
		return delay, text
	}
	return delay, "неизвестно"
}

// recordJournal appends the dispatched alert to the persistent journal
// when one is configured.
func (t *DelayTracker) recordJournal(ctx context.Context, flight *entity.Flight, delay int, notification *entity.Notification) {
	if t.journal == nil {
		return
	}

	record := &entity.NotificationRecord{
		FlightID:      flight.ID,
		FlightNumber:  flight.FlightNumber,
		Origin:        flight.Origin,
		DelayMinutes:  delay,
		EstimatedTime: flight.EstimatedTime,
		Title:         notification.Title,
		Body:          notification.Body,
		SentAt:        time.Now(),
	}

	if err := t.journal.Insert(ctx, record); err != nil {
		t.logger.Error("Failed to journal notification",
			"flightId", flight.ID,
			"error", err)
	}
}

// NotifiedCount returns the size of the session's notified set.
func (t *DelayTracker) NotifiedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.notified)
}
