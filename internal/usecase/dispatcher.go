package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/notifier"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/repository"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/metrics"
	"github.com/fareyxcel-dev/arrivalive-sub001/templates"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DispatchReport aggregates one run's delivery outcomes.
type DispatchReport struct {
	Sent   int
	Failed int
	// SkippedChannels records, once per run, channels whose provider
	// credentials are absent. Not per-subscription noise.
	SkippedChannels map[entity.Channel]string
}

// Dispatcher fans status changes out to subscribed users across every
// enabled channel. Failures are isolated at the smallest unit: one
// channel for one subscription.
type Dispatcher struct {
	subRepo     repository.SubscriptionRepository
	logRepo     repository.NotificationLogRepository
	airlineRepo repository.AirlineRepository
	senders     []notifier.Sender
	metrics     *metrics.Metrics
	logger      logger.Logger
	concurrency int
	sendTimeout time.Duration
}

// NewDispatcher creates a new notification dispatcher. airlineRepo and
// metrics may be nil; copy then falls back to the raw carrier code and
// counters are not recorded.
func NewDispatcher(
	subRepo repository.SubscriptionRepository,
	logRepo repository.NotificationLogRepository,
	airlineRepo repository.AirlineRepository,
	senders []notifier.Sender,
	m *metrics.Metrics,
	logger logger.Logger,
	concurrency int,
	sendTimeout time.Duration,
) *Dispatcher {
	if concurrency <= 0 {
		concurrency = 8
	}
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &Dispatcher{
		subRepo:     subRepo,
		logRepo:     logRepo,
		airlineRepo: airlineRepo,
		senders:     senders,
		metrics:     m,
		logger:      logger,
		concurrency: concurrency,
		sendTimeout: sendTimeout,
	}
}

// attempt is one (status change, subscription, channel) delivery unit.
type attempt struct {
	change entity.StatusChange
	sub    *entity.Subscription
	sender notifier.Sender
	msg    notifier.Message
}

// Dispatch delivers every change to every matching subscription across
// enabled channels. Attempts run concurrently under a bounded pool;
// each writes its own log entry and no failure aborts the batch.
func (d *Dispatcher) Dispatch(ctx context.Context, changes []entity.StatusChange) *DispatchReport {
	report := &DispatchReport{
		SkippedChannels: make(map[entity.Channel]string),
	}

	for _, sender := range d.senders {
		if !sender.Configured() {
			report.SkippedChannels[sender.Name()] = notifier.ErrNotConfigured.Error()
			d.logger.Warn("Channel skipped for this run", "channel", sender.Name())
		}
	}

	attempts := d.collectAttempts(ctx, changes)
	if len(attempts) == 0 {
		return report
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(d.concurrency)

	for _, a := range attempts {
		a := a
		g.Go(func() error {
			err := d.deliver(ctx, a)

			mu.Lock()
			if err == nil {
				report.Sent++
			} else {
				report.Failed++
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return report
}

// collectAttempts expands changes into per-(subscription, channel)
// delivery units. A channel is attempted only if the subscription's
// enable flag is set, the contact field is present and the provider is
// configured.
func (d *Dispatcher) collectAttempts(ctx context.Context, changes []entity.StatusChange) []attempt {
	var attempts []attempt
	for _, change := range changes {
		subs, err := d.subRepo.FindByFlight(ctx, change.Record.FlightID, change.Record.FlightDate)
		if err != nil {
			d.logger.Error("Failed to load subscriptions",
				"flight", change.Record.FlightID,
				"date", change.Record.FlightDate,
				"error", err)
			continue
		}
		if len(subs) == 0 {
			continue
		}

		airlineName := d.airlineName(ctx, change.Record.AirlineCode)

		for _, sub := range subs {
			for _, sender := range d.senders {
				dest, enabled := destinationFor(sender.Name(), sub)
				if !enabled || dest == "" {
					continue
				}
				if !sender.Configured() {
					continue // reported once at channel level
				}
				attempts = append(attempts, attempt{
					change: change,
					sub:    sub,
					sender: sender,
					msg:    buildMessage(sender.Name(), dest, change, airlineName),
				})
			}
		}
	}
	return attempts
}

// deliver runs one attempt under its own timeout and appends exactly
// one log entry for it, success or not.
func (d *Dispatcher) deliver(ctx context.Context, a attempt) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	err := a.sender.Send(sendCtx, a.msg)

	entry := &entity.NotificationLogEntry{
		ID:             uuid.NewString(),
		SubscriptionID: a.sub.ID,
		Channel:        a.sender.Name(),
		FlightID:       a.change.Record.FlightID,
		FlightDate:     a.change.Record.FlightDate,
		Message:        a.change.Describe(),
		Success:        err == nil,
		SentAt:         time.Now(),
	}

	if err != nil {
		entry.ErrorDetail = err.Error()
		d.logger.Warn("Notification delivery failed",
			"channel", a.sender.Name(),
			"subscription", a.sub.ID,
			"error", err)
		if d.metrics != nil {
			d.metrics.NotificationFailures.WithLabelValues(string(a.sender.Name())).Inc()
		}

		if errors.Is(err, notifier.ErrTokenGone) {
			if cerr := d.subRepo.ClearPushToken(ctx, a.sub.UserID); cerr != nil {
				d.logger.Error("Failed to clear push token", "userId", a.sub.UserID, "error", cerr)
			} else {
				d.logger.Info("Cleared invalidated push token", "userId", a.sub.UserID)
			}
		}
	} else if d.metrics != nil {
		d.metrics.NotificationsSent.WithLabelValues(string(a.sender.Name())).Inc()
	}

	if lerr := d.logRepo.Append(ctx, entry); lerr != nil {
		d.logger.Error("Failed to append notification log", "subscription", a.sub.ID, "error", lerr)
	}

	return err
}

func (d *Dispatcher) airlineName(ctx context.Context, code string) string {
	if d.airlineRepo == nil {
		return code
	}
	airline, err := d.airlineRepo.GetByCode(ctx, code)
	if err != nil {
		d.logger.Debug("Airline lookup failed, using code", "code", code, "error", err)
		return code
	}
	return airline.Name
}

func destinationFor(ch entity.Channel, sub *entity.Subscription) (string, bool) {
	switch ch {
	case entity.ChannelSMS:
		return sub.Phone, sub.SMSEnabled
	case entity.ChannelEmail:
		return sub.Email, sub.EmailEnabled
	case entity.ChannelPush:
		return sub.PushToken, sub.PushEnabled
	}
	return "", false
}

func buildMessage(ch entity.Channel, dest string, change entity.StatusChange, airlineName string) notifier.Message {
	meta := map[string]string{
		"flightId":   change.Record.FlightID,
		"flightDate": change.Record.FlightDate,
		"oldStatus":  change.OldStatus,
		"newStatus":  change.NewStatus,
	}

	if ch == entity.ChannelEmail {
		subject, body := templates.BuildStatusEmail(change, airlineName)
		return notifier.Message{To: dest, Subject: subject, Body: body, Meta: meta}
	}

	return notifier.Message{
		To:      dest,
		Subject: "Flight status update",
		Body:    templates.BuildStatusText(change, airlineName),
		Meta:    meta,
	}
}
