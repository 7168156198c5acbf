package channel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/notifier"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
)

const defaultTwilioURL = "https://api.twilio.com"

// TwilioSender delivers SMS through the carrier messaging API using
// basic-auth form posts.
type TwilioSender struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	client     *http.Client
	logger     logger.Logger
}

// NewTwilioSender creates an SMS sender. An empty baseURL selects the
// production API; tests pass their own server.
func NewTwilioSender(accountSID, authToken, fromNumber, baseURL string, logger logger.Logger) *TwilioSender {
	if baseURL == "" {
		baseURL = defaultTwilioURL
	}
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		baseURL:    baseURL,
		client:     &http.Client{},
		logger:     logger,
	}
}

// Name returns the channel this sender serves
func (s *TwilioSender) Name() entity.Channel {
	return entity.ChannelSMS
}

// Configured reports whether the provider credentials are present
func (s *TwilioSender) Configured() bool {
	return s.accountSID != "" && s.authToken != "" && s.fromNumber != ""
}

// Send posts one SMS. Any non-2xx response or transport error is a
// failure with the response body captured.
func (s *TwilioSender) Send(ctx context.Context, msg notifier.Message) error {
	if !s.Configured() {
		return notifier.ErrNotConfigured
	}

	form := url.Values{}
	form.Set("From", s.fromNumber)
	form.Set("To", msg.To)
	form.Set("Body", msg.Body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	s.logger.Debug("SMS delivered", "to", msg.To)
	return nil
}
