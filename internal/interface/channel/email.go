package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/notifier"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
)

const defaultSendgridURL = "https://api.sendgrid.com"

// SendgridSender delivers templated HTML email through the
// transactional mail API using bearer-auth posts.
type SendgridSender struct {
	apiKey      string
	fromAddress string
	baseURL     string
	client      *http.Client
	logger      logger.Logger
}

// NewSendgridSender creates an email sender. An empty baseURL selects
// the production API; tests pass their own server.
func NewSendgridSender(apiKey, fromAddress, baseURL string, logger logger.Logger) *SendgridSender {
	if baseURL == "" {
		baseURL = defaultSendgridURL
	}
	return &SendgridSender{
		apiKey:      apiKey,
		fromAddress: fromAddress,
		baseURL:     baseURL,
		client:      &http.Client{},
		logger:      logger,
	}
}

// Name returns the channel this sender serves
func (s *SendgridSender) Name() entity.Channel {
	return entity.ChannelEmail
}

// Configured reports whether the provider credentials are present
func (s *SendgridSender) Configured() bool {
	return s.apiKey != "" && s.fromAddress != ""
}

type sendgridAddress struct {
	Email string `json:"email"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendgridPersonalization struct {
	To []sendgridAddress `json:"to"`
}

type sendgridMail struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
}

// Send posts one HTML message. Any non-2xx response or transport error
// is a failure with the response body captured.
func (s *SendgridSender) Send(ctx context.Context, msg notifier.Message) error {
	if !s.Configured() {
		return notifier.ErrNotConfigured
	}

	mail := sendgridMail{
		Personalizations: []sendgridPersonalization{{To: []sendgridAddress{{Email: msg.To}}}},
		From:             sendgridAddress{Email: s.fromAddress},
		Subject:          msg.Subject,
		Content:          []sendgridContent{{Type: "text/html", Value: msg.Body}},
	}

	payload, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v3/mail/send", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	s.logger.Debug("Email delivered", "to", msg.To)
	return nil
}
