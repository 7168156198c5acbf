// internal/domain/entity/subscription.go
package entity

import (
	"time"
)

// Subscription registers a user's interest in one flight on one date.
// Contact details are denormalized onto the subscription so the
// dispatcher never needs a user lookup mid-fanout.
type Subscription struct {
	ID         string `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     string `bson:"userId" json:"userId"`
	FlightID   string `bson:"flightId" json:"flightId"`
	FlightDate string `bson:"flightDate" json:"flightDate"`

	SMSEnabled   bool `bson:"smsEnabled" json:"smsEnabled"`
	EmailEnabled bool `bson:"emailEnabled" json:"emailEnabled"`
	PushEnabled  bool `bson:"pushEnabled" json:"pushEnabled"`

	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	PushToken string `bson:"pushToken,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
