package usecase

import (
	"context"
	"errors"
	"testing"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/pkg/logger"
)

type fakeAirlineRepo struct {
	names map[string]string
	err   error
}

func (f *fakeAirlineRepo) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	if f.err != nil {
		return nil, f.err
	}
	name, ok := f.names[code]
	if !ok {
		return nil, errors.New("airline not found")
	}
	return &entity.Airline{Code: code, Name: name}, nil
}

func TestNormalizeArrivals_EstimatedTimeFallback(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNop())

	raw := []entity.RawArrival{
		{ID: "f1", FlightNumber: "SU 1450", ScheduledTime: "10:20"},
	}

	flights := n.NormalizeArrivals(context.Background(), raw, "2026-09-01")
	if len(flights) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(flights))
	}
	if flights[0].EstimatedTime != "10:20" {
		t.Errorf("EstimatedTime = %q, want fallback to scheduled %q", flights[0].EstimatedTime, "10:20")
	}
}

func TestNormalizeArrivals_StampsTargetDate(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNop())

	raw := []entity.RawArrival{
		{ID: "f1", ScheduledTime: "10:20", EstimatedTime: "10:20"},
	}

	flights := n.NormalizeArrivals(context.Background(), raw, "2026-09-02")
	if flights[0].Date != "2026-09-02" {
		t.Errorf("Date = %q, want target date stamped regardless of provider output", flights[0].Date)
	}
}

func TestNormalizeArrivals_SortsByScheduledTime(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNop())

	raw := []entity.RawArrival{
		{ID: "a", ScheduledTime: "14:00"},
		{ID: "b", ScheduledTime: "09:30"},
		{ID: "c", ScheduledTime: "22:10"},
	}

	flights := n.NormalizeArrivals(context.Background(), raw, "2026-09-01")

	want := []string{"09:30", "14:00", "22:10"}
	for i, w := range want {
		if flights[i].ScheduledTime != w {
			t.Errorf("flights[%d].ScheduledTime = %q, want %q", i, flights[i].ScheduledTime, w)
		}
	}
}

func TestNormalizeArrivals_PreservesUnknownStatus(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNop())

	raw := []entity.RawArrival{
		{ID: "f1", ScheduledTime: "10:00", Status: "Приземляется"},
	}

	flights := n.NormalizeArrivals(context.Background(), raw, "2026-09-01")
	if string(flights[0].Status) != "Приземляется" {
		t.Errorf("Status = %q, unknown statuses must round-trip unchanged", flights[0].Status)
	}
	if flights[0].IsDelayed() {
		t.Error("unknown status must not match the delayed rule")
	}
}

func TestNormalizeArrivals_GeneratesMissingID(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNop())

	raw := []entity.RawArrival{
		{ScheduledTime: "10:00"},
		{ScheduledTime: "11:00"},
	}

	flights := n.NormalizeArrivals(context.Background(), raw, "2026-09-01")
	if flights[0].ID == "" || flights[1].ID == "" {
		t.Fatal("expected generated IDs for records without one")
	}
	if flights[0].ID == flights[1].ID {
		t.Error("generated IDs must be unique")
	}
}

func TestNormalizeArrivals_AirlineEnrichment(t *testing.T) {
	repo := &fakeAirlineRepo{names: map[string]string{"SU": "Аэрофлот"}}
	n := NewNormalizer(repo, logger.NewNop())

	raw := []entity.RawArrival{
		{ID: "a", FlightNumber: "SU 1450", ScheduledTime: "10:00"},
		{ID: "b", FlightNumber: "S7 2606", Airline: "S7 Airlines", ScheduledTime: "11:00"},
		{ID: "c", FlightNumber: "KV 101", ScheduledTime: "12:00"},
	}

	flights := n.NormalizeArrivals(context.Background(), raw, "2026-09-01")

	if flights[0].Airline != "Аэрофлот" {
		t.Errorf("empty airline not backfilled, got %q", flights[0].Airline)
	}
	if flights[1].Airline != "S7 Airlines" {
		t.Errorf("provider airline must not be overwritten, got %q", flights[1].Airline)
	}
	if flights[2].Airline != "" {
		t.Errorf("failed lookup must leave the field empty, got %q", flights[2].Airline)
	}
}

func TestCarrierCode(t *testing.T) {
	tests := []struct {
		flightNumber string
		want         string
	}{
		{"SU 1450", "SU"},
		{"N4 307", "N4"},
		{"KV101", "KV"},
		{"X", "X"},
	}

	for _, tt := range tests {
		f := entity.Flight{FlightNumber: tt.flightNumber}
		if got := f.CarrierCode(); got != tt.want {
			t.Errorf("CarrierCode(%q) = %q, want %q", tt.flightNumber, got, tt.want)
		}
	}
}
