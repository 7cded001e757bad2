// internal/domain/entity/notification.go
package entity

import (
	"time"
)

// PermissionState mirrors the notification capability's permission model.
type PermissionState string

const (
	PermissionDefault PermissionState = "default"
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
)

// Notification is one delay alert handed to the push capability.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
}

// NotificationRecord is the journal entry persisted after a delay
// notification was dispatched successfully.
type NotificationRecord struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	FlightID      string    `json:"flightId" bson:"flightId"`
	FlightNumber  string    `json:"flightNumber" bson:"flightNumber"`
	Origin        string    `json:"origin" bson:"origin"`
	DelayMinutes  int       `json:"delayMinutes" bson:"delayMinutes"`
	EstimatedTime string    `json:"estimatedTime" bson:"estimatedTime"`
	Title         string    `json:"title" bson:"title"`
	Body          string    `json:"body" bson:"body"`
	SentAt        time.Time `json:"sentAt" bson:"sentAt"`
}
