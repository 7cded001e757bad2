package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is one carrier reference row, used to backfill airline names the
// provider left empty.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
