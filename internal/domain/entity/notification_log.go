// internal/domain/entity/notification_log.go
package entity

import (
	"time"
)

// Channel is one notification delivery mechanism.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// NotificationLogEntry is the durable record of a single dispatch
// attempt. Exactly one entry is written per attempted (subscription,
// channel) pair, whether or not delivery succeeded. Append-only.
type NotificationLogEntry struct {
	ID             string    `bson:"_id,omitempty" json:"id,omitempty"`
	SubscriptionID string    `bson:"subscriptionId" json:"subscriptionId"`
	Channel        Channel   `bson:"channel" json:"channel"`
	FlightID       string    `bson:"flightId" json:"flightId"`
	FlightDate     string    `bson:"flightDate" json:"flightDate"`
	Message        string    `bson:"message" json:"message"`
	Success        bool      `bson:"success" json:"success"`
	ErrorDetail    string    `bson:"errorDetail,omitempty" json:"errorDetail,omitempty"`
	SentAt         time.Time `bson:"sentAt" json:"sentAt"`
}
