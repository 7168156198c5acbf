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

const defaultFCMURL = "https://fcm.googleapis.com"

const pushIcon = "/icons/plane-192.png"

// FCMSender delivers push messages through the mobile push gateway
// using server-key auth posts.
type FCMSender struct {
	serverKey string
	baseURL   string
	client    *http.Client
	logger    logger.Logger
}

// NewFCMSender creates a push sender. An empty baseURL selects the
// production gateway; tests pass their own server.
func NewFCMSender(serverKey, baseURL string, logger logger.Logger) *FCMSender {
	if baseURL == "" {
		baseURL = defaultFCMURL
	}
	return &FCMSender{
		serverKey: serverKey,
		baseURL:   baseURL,
		client:    &http.Client{},
		logger:    logger,
	}
}

// Name returns the channel this sender serves
func (s *FCMSender) Name() entity.Channel {
	return entity.ChannelPush
}

// Configured reports whether the gateway server key is present
func (s *FCMSender) Configured() bool {
	return s.serverKey != ""
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

type fcmPayload struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

// Send posts one push payload. A 410 Gone response returns
// notifier.ErrTokenGone so the caller can clear the stored token;
// other failures only fail this attempt.
func (s *FCMSender) Send(ctx context.Context, msg notifier.Message) error {
	if !s.Configured() {
		return notifier.ErrNotConfigured
	}

	payload, err := json.Marshal(fcmPayload{
		To: msg.To,
		Notification: fcmNotification{
			Title: msg.Subject,
			Body:  msg.Body,
			Icon:  pushIcon,
		},
		Data: msg.Meta,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/fcm/send", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Authorization", "key="+s.serverKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		return fmt.Errorf("push gateway rejected destination: %w", notifier.ErrTokenGone)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push gateway returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	s.logger.Debug("Push delivered")
	return nil
}
