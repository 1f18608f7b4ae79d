package notify

import (
	"context"
	"fmt"

	"github.com/luminasmiles/lead-relay/internal/leads"
	"github.com/luminasmiles/lead-relay/pkg/logging"
)

// Service sends operator notifications when new leads arrive. Notifications
// are best-effort: callers log failures but never surface them to the
// submitting user.
type Service struct {
	email     EmailSender
	recipient string
	logger    *logging.Logger
}

// NewService creates a notification service. A nil email sender or empty
// recipient disables notifications.
func NewService(email EmailSender, recipient string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:     email,
		recipient: recipient,
		logger:    logger,
	}
}

// NotifyNewLead emails the operator about a freshly captured lead.
func (s *Service) NotifyNewLead(ctx context.Context, lead *leads.Lead) error {
	if s == nil || s.email == nil || s.recipient == "" {
		return nil
	}

	subject := fmt.Sprintf("New Lead - %s", lead.Name)
	body := fmt.Sprintf(`A new consultation request has come in!

Name: %s
Phone: %s
Email: %s
Service: %s
Message: %s
Submission ID: %s

Please follow up within 24 hours.`,
		lead.Name, lead.Phone, lead.Email, lead.Service, lead.Message, lead.SubmissionID)

	msg := EmailMessage{
		To:      s.recipient,
		Subject: subject,
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: new lead email: %w", err)
	}
	s.logger.Info("new lead notification sent", "to", s.recipient, "submission_id", lead.SubmissionID)
	return nil
}
