package delivery

import "time"

// Channel identifies one independent delivery target for a submission.
type Channel string

const (
	ChannelPersist Channel = "persist"
	ChannelWebhook Channel = "webhook"
	ChannelBackup  Channel = "backup"
)

// FailureKind classifies how a channel attempt failed, if it did.
type FailureKind string

const (
	// FailureNone means the attempt succeeded.
	FailureNone FailureKind = "none"
	// FailureTimeout means the call was cancelled at its deadline.
	FailureTimeout FailureKind = "timeout"
	// FailureNetwork means the call failed before receiving a response.
	FailureNetwork FailureKind = "network"
	// FailureUpstreamRejected means the call settled with a non-2xx status.
	FailureUpstreamRejected FailureKind = "upstreamRejected"
	// FailureUnavailable means the channel was not attempted: no URL
	// configured, or the collaborator refused the connection outright.
	FailureUnavailable FailureKind = "unavailable"
)

// Outcome is the result of one channel attempt. Every condition a channel
// can end in is normalized into an Outcome; channel code never lets a fault
// escape its boundary. Outcomes are aggregated once per logical submission
// and never retried automatically within an attempt.
type Outcome struct {
	Channel     Channel     `json:"channel"`
	Succeeded   bool        `json:"succeeded"`
	HTTPStatus  int         `json:"httpStatus,omitempty"`
	FailureKind FailureKind `json:"failureKind"`
	DurationMS  int64       `json:"durationMs"`
}

// Unavailable builds the outcome for a channel refused before any attempt.
func Unavailable(channel Channel) Outcome {
	return Outcome{Channel: channel, FailureKind: FailureUnavailable}
}

// Succeeded builds the outcome for a non-HTTP channel attempt that completed.
func Succeeded(channel Channel, elapsed time.Duration) Outcome {
	return Outcome{
		Channel:     channel,
		Succeeded:   true,
		FailureKind: FailureNone,
		DurationMS:  elapsed.Milliseconds(),
	}
}

// Failed builds the outcome for a non-HTTP channel attempt that did not.
func Failed(channel Channel, kind FailureKind, elapsed time.Duration) Outcome {
	return Outcome{
		Channel:     channel,
		FailureKind: kind,
		DurationMS:  elapsed.Milliseconds(),
	}
}

func success(channel Channel, status int, elapsed time.Duration) Outcome {
	return Outcome{
		Channel:     channel,
		Succeeded:   true,
		HTTPStatus:  status,
		FailureKind: FailureNone,
		DurationMS:  elapsed.Milliseconds(),
	}
}

func failure(channel Channel, kind FailureKind, status int, elapsed time.Duration) Outcome {
	return Outcome{
		Channel:     channel,
		HTTPStatus:  status,
		FailureKind: kind,
		DurationMS:  elapsed.Milliseconds(),
	}
}
