// internal/domain/entity/flight.go
package entity

import (
	"strings"
)

// FlightStatus is one of the six canonical arrival statuses the board
// recognizes. Any other string coming from the provider is kept as-is for
// display but matches none of the styling or notification rules.
type FlightStatus string

const (
	StatusLanded    FlightStatus = "Прибыл"
	StatusExpected  FlightStatus = "Ожидается"
	StatusDelayed   FlightStatus = "Задерживается"
	StatusCancelled FlightStatus = "Отменен"
	StatusScheduled FlightStatus = "По расписанию"
	StatusEnRoute   FlightStatus = "В пути"
)

// CanonicalStatuses lists the six statuses in the order they are spelled
// out to the provider.
var CanonicalStatuses = []FlightStatus{
	StatusLanded,
	StatusExpected,
	StatusDelayed,
	StatusCancelled,
	StatusScheduled,
	StatusEnRoute,
}

// RawArrival is one loosely-typed record as decoded from the provider
// response, before normalization. EstimatedTime may be empty and Date is
// ignored; the normalizer stamps the query's target date instead.
type RawArrival struct {
	ID            string `json:"id"`
	FlightNumber  string `json:"flightNumber"`
	Airline       string `json:"airline"`
	Origin        string `json:"origin"`
	ScheduledTime string `json:"scheduledTime"`
	EstimatedTime string `json:"estimatedTime"`
	Status        string `json:"status"`
	Aircraft      string `json:"aircraft"`
	Terminal      string `json:"terminal"`
}

// Flight is one scheduled arrival on the board.
type Flight struct {
	ID            string       `json:"id" bson:"flightId"`
	FlightNumber  string       `json:"flightNumber" bson:"flightNumber"`
	Airline       string       `json:"airline" bson:"airline"`
	Origin        string       `json:"origin" bson:"origin"`
	ScheduledTime string       `json:"scheduledTime" bson:"scheduledTime"` // HH:mm, 24-hour
	EstimatedTime string       `json:"estimatedTime" bson:"estimatedTime"` // HH:mm, never empty after normalization
	Status        FlightStatus `json:"status" bson:"status"`
	Aircraft      string       `json:"aircraft,omitempty" bson:"aircraft,omitempty"`
	Terminal      string       `json:"terminal,omitempty" bson:"terminal,omitempty"`
	Date          string       `json:"date" bson:"date"` // YYYY-MM-DD, stamped by the normalizer
}

// IsDelayed reports whether the flight carries the canonical delayed status.
func (f *Flight) IsDelayed() bool {
	return f.Status == StatusDelayed
}

// CarrierCode returns the two-character carrier prefix of the flight
// number ("SU 1450" yields "SU"), used for airline reference lookups.
func (f *Flight) CarrierCode() string {
	code := strings.ReplaceAll(f.FlightNumber, " ", "")
	code = strings.ReplaceAll(code, "/", "")
	if len(code) >= 2 {
		return code[:2]
	}
	return code
}

// DaySchedule groups the flights of one calendar date.
type DaySchedule struct {
	Date    string   `json:"date"`
	Flights []Flight `json:"flights"`
}

// Board is a point-in-time snapshot of the whole arrivals board as handed
// to the presentation boundary.
type Board struct {
	Today    DaySchedule `json:"today"`
	Tomorrow DaySchedule `json:"tomorrow"`
	Loading  bool        `json:"loading"`
	Error    string      `json:"error,omitempty"`
}
