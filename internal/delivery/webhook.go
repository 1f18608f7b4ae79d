package delivery

import (
	"context"
	"encoding/json"
	"time"

	"github.com/luminasmiles/lead-relay/pkg/logging"
)

// LeadPayload is the projection of a lead sent to outbound channels.
type LeadPayload struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Service      string    `json:"service"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	SubmissionID string    `json:"submissionId"`
	LeadID       string    `json:"leadId,omitempty"`
}

// WebhookSender delivers leads to the automation webhook as fire-and-forget
// JSON posts. There is no response body contract beyond the HTTP status.
type WebhookSender struct {
	client  *BoundedClient
	url     string
	timeout time.Duration
	logger  *logging.Logger
}

// NewWebhookSender creates a sender for the automation endpoint. An empty
// url makes every Send refuse the channel rather than fall back to a
// default baked into the binary.
func NewWebhookSender(client *BoundedClient, url string, timeout time.Duration, logger *logging.Logger) *WebhookSender {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookSender{
		client:  client,
		url:     url,
		timeout: timeout,
		logger:  logger,
	}
}

// Send posts the payload to the automation endpoint within the configured
// deadline and reports the outcome. It never returns an error.
func (s *WebhookSender) Send(ctx context.Context, payload LeadPayload) Outcome {
	if s.url == "" {
		s.logger.Warn("webhook URL not configured, skipping automation trigger")
		return Unavailable(ChannelWebhook)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("webhook payload marshal failed", "error", err, "submission_id", payload.SubmissionID)
		return Unavailable(ChannelWebhook)
	}

	return s.client.Post(ctx, ChannelWebhook, s.url, "application/json", body, s.timeout)
}
