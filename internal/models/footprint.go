package models

import (
	"time"

	"github.com/google/uuid"
)

// FootprintRecord stores a computed carbon footprint value for a user on a
// given date. The computation itself happens client-side.
type FootprintRecord struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"userId"`
	CarbonFootprint float64   `json:"carbonFootprint"`
	Date            time.Time `json:"date"`
	CreatedAt       time.Time `json:"createdAt"`
}
