package delivery

import (
	"context"
	"net/url"
	"time"

	"github.com/luminasmiles/lead-relay/pkg/logging"
)

// relayFormName identifies the registered form at the static relay.
const relayFormName = "contact"

// RelaySender delivers leads to the backup form-relay channel as
// form-encoded posts. The relay is best-effort: failures are logged and
// recorded but never surface as user-facing errors.
type RelaySender struct {
	client  *BoundedClient
	url     string
	timeout time.Duration
	logger  *logging.Logger
}

// NewRelaySender creates a sender for the backup relay. An empty url makes
// every Send refuse the channel.
func NewRelaySender(client *BoundedClient, url string, timeout time.Duration, logger *logging.Logger) *RelaySender {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RelaySender{
		client:  client,
		url:     url,
		timeout: timeout,
		logger:  logger,
	}
}

// Send posts the payload form-encoded to the relay. The submission id rides
// along so the relay's records stay correlatable with the other channels.
func (s *RelaySender) Send(ctx context.Context, payload LeadPayload) Outcome {
	if s.url == "" {
		s.logger.Warn("backup relay URL not configured, skipping backup delivery")
		return Unavailable(ChannelBackup)
	}

	form := url.Values{}
	form.Set("form-name", relayFormName)
	form.Set("name", payload.Name)
	form.Set("email", payload.Email)
	form.Set("phone", payload.Phone)
	form.Set("service", payload.Service)
	form.Set("message", payload.Message)
	form.Set("submission_id", payload.SubmissionID)

	return s.client.Post(ctx, ChannelBackup, s.url, "application/x-www-form-urlencoded", []byte(form.Encode()), s.timeout)
}
