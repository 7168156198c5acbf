package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is reference data used to expand a two-letter carrier code
// into a display name for notification copy.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
