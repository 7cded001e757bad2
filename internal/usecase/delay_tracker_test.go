package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/pkg/logger"
)

type fakeNotifier struct {
	permission entity.PermissionState
	failSends  int
	sent       []entity.Notification
}

func (f *fakeNotifier) RequestPermission(ctx context.Context) entity.PermissionState {
	return f.permission
}

func (f *fakeNotifier) Send(ctx context.Context, n *entity.Notification) error {
	if f.failSends > 0 {
		f.failSends--
		return errors.New("push service unavailable")
	}
	f.sent = append(f.sent, *n)
	return nil
}

func delayedFlight(id string) entity.Flight {
	return entity.Flight{
		ID:            id,
		FlightNumber:  "SU 1450",
		Origin:        "Москва",
		ScheduledTime: "10:20",
		EstimatedTime: "11:25",
		Status:        entity.StatusDelayed,
		Date:          "2026-09-01",
	}
}

func newGrantedTracker(notifier *fakeNotifier) *DelayTracker {
	tracker := NewDelayTracker(notifier, nil, logger.NewNop(), nil)
	tracker.RequestPermission(context.Background())
	return tracker
}

func TestNotifyDelays_AtMostOncePerFlight(t *testing.T) {
	notifier := &fakeNotifier{permission: entity.PermissionGranted}
	tracker := newGrantedTracker(notifier)

	flights := []entity.Flight{delayedFlight("F1")}

	// Same delayed flight across two consecutive sync cycles.
	tracker.NotifyDelays(context.Background(), flights)
	tracker.NotifyDelays(context.Background(), flights)

	if len(notifier.sent) != 1 {
		t.Fatalf("expected exactly 1 notification across both cycles, got %d", len(notifier.sent))
	}
}

func TestNotifyDelays_ComposesTitleAndBody(t *testing.T) {
	notifier := &fakeNotifier{permission: entity.PermissionGranted}
	tracker := newGrantedTracker(notifier)

	tracker.NotifyDelays(context.Background(), []entity.Flight{delayedFlight("F1")})

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.Title != "Задержка рейса SU 1450" {
		t.Errorf("Title = %q", n.Title)
	}
	for _, part := range []string{"Москва", "1ч 5м", "11:25"} {
		if !strings.Contains(n.Body, part) {
			t.Errorf("Body %q missing %q", n.Body, part)
		}
	}
}

func TestNotifyDelays_FailedDispatchRetriesNextCycle(t *testing.T) {
	notifier := &fakeNotifier{permission: entity.PermissionGranted, failSends: 1}
	tracker := newGrantedTracker(notifier)

	flights := []entity.Flight{delayedFlight("F1")}

	// First cycle fails to dispatch; the flight must stay un-notified.
	tracker.NotifyDelays(context.Background(), flights)
	if tracker.NotifiedCount() != 0 {
		t.Fatalf("failed dispatch must not mark the flight, notified set size %d", tracker.NotifiedCount())
	}

	// Second cycle succeeds.
	tracker.NotifyDelays(context.Background(), flights)
	if len(notifier.sent) != 1 {
		t.Fatalf("expected retry to dispatch on the next cycle, got %d sends", len(notifier.sent))
	}
	if tracker.NotifiedCount() != 1 {
		t.Errorf("notified set size = %d, want 1", tracker.NotifiedCount())
	}
}

func TestNotifyDelays_SkipsNonDelayedFlights(t *testing.T) {
	notifier := &fakeNotifier{permission: entity.PermissionGranted}
	tracker := newGrantedTracker(notifier)

	flights := []entity.Flight{
		{ID: "a", Status: entity.StatusLanded, ScheduledTime: "09:00", EstimatedTime: "09:00"},
		{ID: "b", Status: entity.StatusScheduled, ScheduledTime: "10:00", EstimatedTime: "10:00"},
		{ID: "c", Status: entity.StatusEnRoute, ScheduledTime: "11:00", EstimatedTime: "11:00"},
	}

	tracker.NotifyDelays(context.Background(), flights)
	if len(notifier.sent) != 0 {
		t.Errorf("expected no notifications for non-delayed flights, got %d", len(notifier.sent))
	}
}

func TestNotifyDelays_PermissionDenied(t *testing.T) {
	notifier := &fakeNotifier{permission: entity.PermissionDenied}
	tracker := newGrantedTracker(notifier)

	tracker.NotifyDelays(context.Background(), []entity.Flight{delayedFlight("F1")})

	if len(notifier.sent) != 0 {
		t.Errorf("denied permission must no-op silently, got %d sends", len(notifier.sent))
	}
	if tracker.NotifiedCount() != 0 {
		t.Errorf("nothing should be marked notified under denied permission")
	}
}

func TestNotifyDelays_MalformedTimeDegradesToUnknown(t *testing.T) {
	notifier := &fakeNotifier{permission: entity.PermissionGranted}
	tracker := newGrantedTracker(notifier)

	flight := delayedFlight("F1")
	flight.EstimatedTime = "later"

	tracker.NotifyDelays(context.Background(), []entity.Flight{flight})

	if len(notifier.sent) != 1 {
		t.Fatalf("malformed time must not drop the alert, got %d sends", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0].Body, "неизвестно") {
		t.Errorf("Body %q should carry the unknown-delay placeholder", notifier.sent[0].Body)
	}
}
