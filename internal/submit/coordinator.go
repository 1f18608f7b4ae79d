// Package submit orchestrates a lead submission from the submitting client:
// validation, honeypot screening, extraction, then best-effort delivery to
// the primary automation webhook and the backup form relay.
package submit

import (
	"context"
	"time"

	"github.com/luminasmiles/lead-relay/internal/delivery"
	"github.com/luminasmiles/lead-relay/internal/leads"
	"github.com/luminasmiles/lead-relay/pkg/logging"
)

// Status is the terminal state of one submission attempt.
type Status string

const (
	// StatusAccepted means validation and screening passed. The user-visible
	// result is success regardless of downstream channel outcomes.
	StatusAccepted Status = "accepted"

	// StatusDiscarded means the honeypot tripped. The input was dropped
	// silently: no network calls, no user-visible error, form state reset.
	StatusDiscarded Status = "discarded"
)

const (
	successMessage = "Thank you! Your consultation request has been submitted. We'll contact you within 24 hours."
	softMessage    = "Thank you! Your request has been received. We'll contact you within 24 hours."
)

// Result aggregates the outcome of one logical submission.
type Result struct {
	Status  Status
	Lead    *leads.Lead
	Primary delivery.Outcome
	Backup  delivery.Outcome
	Message string
}

// Sender delivers a lead payload to one channel.
type Sender interface {
	Send(ctx context.Context, payload delivery.LeadPayload) delivery.Outcome
}

// Coordinator runs one submission at a time through validate, screen,
// extract and the two delivery channels. It keeps no state across
// submissions; concurrent submissions get independent Coordinator values or
// share one safely since all fields are read-only after construction.
type Coordinator struct {
	primary  Sender
	backup   Sender
	keys     leads.KeyGenerator
	services []string
	notifier Notifier
	logger   *logging.Logger
}

// Config wires the coordinator's collaborators.
type Config struct {
	Primary  Sender
	Backup   Sender
	Keys     leads.KeyGenerator
	Services []string
	Notifier Notifier
	Logger   *logging.Logger
}

// NewCoordinator creates a submission coordinator.
func NewCoordinator(cfg Config) *Coordinator {
	keys := cfg.Keys
	if keys == nil {
		keys = leads.UUIDKeyGenerator{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	return &Coordinator{
		primary:  cfg.Primary,
		backup:   cfg.Backup,
		keys:     keys,
		services: cfg.Services,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit runs one logical submission. Validation failures return a
// *leads.ValidationError before any network call. A honeypot hit returns a
// discarded result with nil error. Otherwise the result is accepted, with
// downstream channel outcomes recorded but never fatal.
func (c *Coordinator) Submit(ctx context.Context, input leads.Submission) (*Result, error) {
	// VALIDATING
	if err := input.Validate(c.services); err != nil {
		if ve, ok := leads.AsValidationError(err); ok {
			c.notifier.Notify(NotifyError, ve.Detail())
		}
		return nil, err
	}

	// SCREENING: bots filled the honeypot. Discard without a word.
	if input.IsSpam() {
		c.logger.Info("honeypot tripped, discarding submission silently")
		return &Result{Status: StatusDiscarded}, nil
	}

	// EXTRACTING: normalize and assign the idempotency key exactly once.
	// Retries of the same logical attempt arrive with the key already set
	// and reuse it unchanged.
	norm := input.Normalize()
	submissionID := norm.SubmissionID
	if submissionID == "" {
		submissionID = c.keys.NewKey()
	}
	lead := norm.Lead(submissionID, time.Now())

	payload := delivery.LeadPayload{
		Name:         lead.Name,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Service:      lead.Service,
		Message:      lead.Message,
		Timestamp:    lead.SubmittedAt,
		Source:       lead.Source,
		SubmissionID: lead.SubmissionID,
	}

	c.notifier.Notify(NotifySending, "Sending your request...")

	// DELIVER_PRIMARY: recorded, never fatal on its own.
	primary := c.deliver(ctx, c.primary, delivery.ChannelWebhook, payload)

	// DELIVER_BACKUP: attempted regardless of the primary outcome, with the
	// same submission id. Failure is logged, never surfaced.
	backup := c.deliver(ctx, c.backup, delivery.ChannelBackup, payload)

	// DONE
	message := successMessage
	if !primary.Succeeded && !backup.Succeeded {
		message = softMessage
	}
	c.notifier.Notify(NotifySuccess, message)

	return &Result{
		Status:  StatusAccepted,
		Lead:    lead,
		Primary: primary,
		Backup:  backup,
		Message: message,
	}, nil
}

func (c *Coordinator) deliver(ctx context.Context, sender Sender, channel delivery.Channel, payload delivery.LeadPayload) delivery.Outcome {
	if sender == nil {
		c.logger.Warn("delivery channel not configured, refusing to attempt", "channel", string(channel))
		return delivery.Unavailable(channel)
	}
	outcome := sender.Send(ctx, payload)
	if !outcome.Succeeded {
		c.logger.Warn("delivery channel failed",
			"channel", string(outcome.Channel),
			"failure_kind", string(outcome.FailureKind),
			"status", outcome.HTTPStatus,
		)
	}
	return outcome
}
