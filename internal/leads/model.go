package leads

import (
	"regexp"
	"strings"
	"time"
)

const (
	// SourceWebsite tags leads originating from the public website form.
	SourceWebsite = "website"

	// StatusNew is the initial lifecycle state. Later states (contacted,
	// converted) belong to the downstream CRM, not this service.
	StatusNew = "new"
)

// Lead is the canonical record delivered to every downstream channel.
// It is read-only once built; only external systems mutate it afterward.
type Lead struct {
	SubmissionID string    `json:"submissionId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Service      string    `json:"service"`
	Message      string    `json:"message"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`

	// LeadID is assigned by the persistence store, empty until stored.
	LeadID string `json:"leadId,omitempty"`
}

// Submission is the raw form input before normalization.
type Submission struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Service      string `json:"service"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`

	// BotField is the honeypot input. Humans never fill it in.
	BotField string `json:"bot-field"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// Normalize trims every field and lowercases the email. It is idempotent:
// normalizing an already-normalized submission is a no-op.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Phone = strings.TrimSpace(s.Phone)
	s.Service = strings.TrimSpace(s.Service)
	s.Message = strings.TrimSpace(s.Message)
	s.SubmissionID = strings.TrimSpace(s.SubmissionID)
	return s
}

// IsSpam reports whether the honeypot field was populated.
func (s Submission) IsSpam() bool {
	return strings.TrimSpace(s.BotField) != ""
}

// Validate checks required-field presence and format on the normalized form
// of the submission. services is the closed set of accepted offerings; an
// empty set only requires the field to be non-empty.
func (s Submission) Validate(services []string) error {
	n := s.Normalize()
	var fields []FieldError

	if len(n.Name) < 2 {
		fields = append(fields, FieldError{Field: "name", Reason: "must be at least 2 characters long"})
	}
	if n.Email == "" {
		fields = append(fields, FieldError{Field: "email", Reason: "is required"})
	} else if !emailPattern.MatchString(n.Email) {
		fields = append(fields, FieldError{Field: "email", Reason: "must be a valid email address"})
	}
	if n.Phone == "" {
		fields = append(fields, FieldError{Field: "phone", Reason: "is required"})
	} else if !phonePattern.MatchString(phoneSeparators.Replace(n.Phone)) {
		fields = append(fields, FieldError{Field: "phone", Reason: "must be a valid phone number"})
	}
	if n.Service == "" {
		fields = append(fields, FieldError{Field: "service", Reason: "is required"})
	} else if len(services) > 0 && !containsService(services, n.Service) {
		fields = append(fields, FieldError{Field: "service", Reason: "is not an offered service"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Lead builds the canonical record from the normalized submission.
// submissionID must be generated exactly once per logical attempt; retries
// of the same attempt reuse it unchanged.
func (s Submission) Lead(submissionID string, submittedAt time.Time) *Lead {
	n := s.Normalize()
	return &Lead{
		SubmissionID: submissionID,
		Name:         n.Name,
		Email:        n.Email,
		Phone:        n.Phone,
		Service:      n.Service,
		Message:      n.Message,
		SubmittedAt:  submittedAt.UTC(),
		Source:       SourceWebsite,
		Status:       StatusNew,
	}
}

func containsService(services []string, service string) bool {
	for _, s := range services {
		if strings.EqualFold(s, service) {
			return true
		}
	}
	return false
}
