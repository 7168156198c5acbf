package notifier

import (
	"context"
	"errors"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
)

// ErrTokenGone reports a push destination the gateway has invalidated.
// The stored token must be cleared and never retried.
var ErrTokenGone = errors.New("push token no longer valid")

// ErrNotConfigured reports missing provider credentials. The affected
// channel is skipped for the whole run, not per subscription.
var ErrNotConfigured = errors.New("channel credentials not configured")

// Message is what an adapter delivers to one destination.
type Message struct {
	To      string // phone number, email address or push token
	Subject string
	Body    string
	Meta    map[string]string // structured metadata carried alongside the copy
}

// Sender delivers one message to one destination. Implementations must
// keep failures local: an error return never affects other channels or
// other subscriptions.
type Sender interface {
	Name() entity.Channel
	Configured() bool
	Send(ctx context.Context, msg Message) error
}
