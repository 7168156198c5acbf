// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// FlightRecord is one row of the arrivals board.
type FlightRecord struct {
	ID            string  `bson:"_id,omitempty" json:"-"`
	FlightKey     string  `bson:"flightKey" json:"-"` // {flightId}:{flightDate} - unique index
	FlightID      string  `bson:"flightId" json:"flightId"`
	AirlineCode   string  `bson:"airlineCode" json:"airlineCode"`
	Origin        string  `bson:"origin" json:"origin"`
	FlightDate    string  `bson:"flightDate" json:"flightDate"` // ISO YYYY-MM-DD
	ScheduledTime string  `bson:"scheduledTime" json:"scheduledTime"`
	EstimatedTime string  `bson:"estimatedTime,omitempty" json:"estimatedTime,omitempty"`
	ActualTime    *string `bson:"actualTime" json:"actualTime"` // always nil at ingestion, populated later
	Terminal      string  `bson:"terminal" json:"terminal"`
	Status        string  `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"-"`
	UpdatedAt time.Time `bson:"updatedAt" json:"-"`
}

// Key returns the composite identity of a flight record.
func (f *FlightRecord) Key() string {
	return f.FlightID + ":" + f.FlightDate
}
