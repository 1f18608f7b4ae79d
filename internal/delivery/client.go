package delivery

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/luminasmiles/lead-relay/pkg/logging"
)

// BoundedClient performs a single outbound call under an explicit deadline.
// Every call settles into an Outcome; the client never retries and never
// returns an error past its boundary. Retry policy, if any, belongs to the
// caller.
type BoundedClient struct {
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption is a functional option for configuring the BoundedClient.
type ClientOption func(*BoundedClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *BoundedClient) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *BoundedClient) {
		c.logger = logger
	}
}

// NewBoundedClient creates a bounded delivery client. Per-call deadlines are
// passed to Post, so the underlying http.Client carries no timeout of its own.
func NewBoundedClient(opts ...ClientOption) *BoundedClient {
	c := &BoundedClient{
		httpClient: &http.Client{},
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post issues one POST to url with the given body and waits at most timeout.
// A deadline fire cancels the in-flight call and classifies the outcome as a
// timeout; the outcome is only reported after the cancellation has been
// acknowledged by the transport, so no pending network work leaks past it.
func (c *BoundedClient) Post(ctx context.Context, channel Channel, url, contentType string, body []byte, timeout time.Duration) Outcome {
	if url == "" {
		c.logger.Warn("delivery channel has no URL configured, refusing to attempt", "channel", channel)
		return Unavailable(channel)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("delivery request build failed", "channel", channel, "error", err)
		return failure(channel, FailureNetwork, 0, time.Since(start))
	}
	req.Header.Set("Content-Type", contentType)

	// Do returns only once the call settled or the cancellation was
	// acknowledged, so elapsed time below includes the full wait.
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		kind := classifyTransportError(err)
		c.logger.Warn("delivery attempt failed",
			"channel", channel,
			"failure_kind", string(kind),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return failure(channel, kind, 0, elapsed)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("delivery attempt succeeded",
			"channel", channel,
			"status", resp.StatusCode,
			"duration_ms", elapsed.Milliseconds(),
		)
		return success(channel, resp.StatusCode, elapsed)
	}

	c.logger.Warn("delivery rejected upstream",
		"channel", channel,
		"status", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds(),
	)
	return failure(channel, FailureUpstreamRejected, resp.StatusCode, elapsed)
}

func classifyTransportError(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	return FailureNetwork
}
