package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/luminasmiles/lead-relay/internal/delivery"
	"github.com/luminasmiles/lead-relay/internal/observability/metrics"
	"github.com/luminasmiles/lead-relay/pkg/logging"
)

const (
	// successMessage acknowledges a fully delivered submission.
	successMessage = "Thank you! Your consultation request has been submitted. We'll contact you within 24 hours."

	// softSuccessMessage is the degraded acknowledgment used when every
	// downstream channel failed. The user still sees success: a well-formed,
	// non-spam submission is never reported as failed.
	softSuccessMessage = "Thank you! Your request has been received. We'll contact you within 24 hours."
)

// WebhookSender delivers the lead to the automation webhook.
type WebhookSender interface {
	Send(ctx context.Context, payload delivery.LeadPayload) delivery.Outcome
}

// DedupeGuard reports whether a submission id is being seen for the first time.
type DedupeGuard interface {
	FirstSeen(ctx context.Context, submissionID string) bool
}

// LeadNotifier tells operators about freshly captured leads.
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead *Lead) error
}

// SubmitHandler handles lead form submissions. One invocation per request,
// no shared state across invocations. "The request was well-formed" and
// "the request was durably delivered everywhere" are separate concerns: only
// the former gates the response status.
type SubmitHandler struct {
	repo     Repository
	webhook  WebhookSender
	guard    DedupeGuard
	notifier LeadNotifier
	metrics  *metrics.SubmissionMetrics
	keys     KeyGenerator
	services []string
	logger   *logging.Logger
}

// SubmitHandlerConfig wires the handler's collaborators. Repo, Webhook,
// Guard, Notifier and Metrics are all optional; a missing channel is refused
// per-request and recorded as failed, never defaulted.
type SubmitHandlerConfig struct {
	Repo     Repository
	Webhook  WebhookSender
	Guard    DedupeGuard
	Notifier LeadNotifier
	Metrics  *metrics.SubmissionMetrics
	Keys     KeyGenerator
	Services []string
	Logger   *logging.Logger
}

// NewSubmitHandler creates a new submission handler.
func NewSubmitHandler(cfg SubmitHandlerConfig) *SubmitHandler {
	keys := cfg.Keys
	if keys == nil {
		keys = UUIDKeyGenerator{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmitHandler{
		repo:     cfg.Repo,
		webhook:  cfg.Webhook,
		guard:    cfg.Guard,
		notifier: cfg.Notifier,
		metrics:  cfg.Metrics,
		keys:     keys,
		services: cfg.Services,
		logger:   logger,
	}
}

// SubmitResponse is the aggregated result returned for one submission.
type SubmitResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message,omitempty"`
	SubmissionID   string  `json:"submissionId,omitempty"`
	WebhookSuccess *bool   `json:"webhookSuccess,omitempty"`
	LeadID         *string `json:"leadId,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// Submit handles POST /api/submit-form.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, SubmitResponse{Error: "method not allowed"}, h.logger)
		return
	}

	sub, err := decodeSubmission(r)
	if err != nil {
		h.logger.Error("failed to decode submission", "error", err)
		h.metrics.ObserveSubmission("rejected")
		writeJSON(w, http.StatusBadRequest, SubmitResponse{Error: "invalid request body"}, h.logger)
		return
	}

	// Reject before any side effect is attempted.
	if err := sub.Validate(h.services); err != nil {
		h.metrics.ObserveSubmission("rejected")
		msg := err.Error()
		if ve, ok := AsValidationError(err); ok {
			msg = ve.Detail()
		}
		writeJSON(w, http.StatusBadRequest, SubmitResponse{Error: msg}, h.logger)
		return
	}

	// A populated honeypot is discarded without touching any channel. The
	// response still looks like success so the bot learns nothing.
	if sub.IsSpam() {
		h.metrics.ObserveSubmission("discarded")
		writeJSON(w, http.StatusOK, SubmitResponse{Success: true, Message: successMessage}, h.logger)
		return
	}

	norm := sub.Normalize()

	// A caller-supplied id keeps repeated deliveries of the same logical
	// submission deduplicable downstream; otherwise generate exactly one.
	submissionID := norm.SubmissionID
	if submissionID == "" {
		submissionID = h.keys.NewKey()
	}

	ctx := r.Context()

	if h.guard != nil && !h.guard.FirstSeen(ctx, submissionID) {
		h.metrics.ObserveSubmission("duplicate")
		writeJSON(w, http.StatusOK, SubmitResponse{
			Success:      true,
			Message:      successMessage,
			SubmissionID: submissionID,
		}, h.logger)
		return
	}

	lead := norm.Lead(submissionID, time.Now())

	// Channel attempts are sequential and independent: persistence failing
	// never skips the webhook, and webhook failure never undoes persistence.
	persistOutcome, leadID := h.persist(ctx, lead)
	h.metrics.ObserveChannel(persistOutcome)

	lead.LeadID = leadID
	webhookOutcome := h.deliverWebhook(ctx, lead)
	h.metrics.ObserveChannel(webhookOutcome)

	if h.notifier != nil {
		if err := h.notifier.NotifyNewLead(ctx, lead); err != nil {
			h.logger.Error("new lead notification failed", "error", err, "submission_id", submissionID)
		}
	}

	h.logger.Info("lead submitted",
		"submission_id", submissionID,
		"lead_id", leadID,
		"service", lead.Service,
		"persist_ok", persistOutcome.Succeeded,
		"webhook_ok", webhookOutcome.Succeeded,
	)
	h.metrics.ObserveSubmission("accepted")

	message := successMessage
	if !persistOutcome.Succeeded && !webhookOutcome.Succeeded {
		message = softSuccessMessage
	}

	resp := SubmitResponse{
		Success:        true,
		Message:        message,
		SubmissionID:   submissionID,
		WebhookSuccess: &webhookOutcome.Succeeded,
		LeadID:         nullableID(leadID),
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// persist attempts the store write. Any failure, including the store being
// entirely unreachable, is folded into the outcome and never aborts the
// handler.
func (h *SubmitHandler) persist(ctx context.Context, lead *Lead) (delivery.Outcome, string) {
	if h.repo == nil {
		h.logger.Warn("persistence not configured, skipping store write", "submission_id", lead.SubmissionID)
		return delivery.Unavailable(delivery.ChannelPersist), ""
	}

	start := time.Now()
	leadID, err := h.repo.Create(ctx, lead)
	elapsed := time.Since(start)
	if err != nil {
		h.logger.Error("lead persistence failed", "error", err, "submission_id", lead.SubmissionID)
		return delivery.Failed(delivery.ChannelPersist, delivery.FailureUnavailable, elapsed), ""
	}
	return delivery.Succeeded(delivery.ChannelPersist, elapsed), leadID
}

func (h *SubmitHandler) deliverWebhook(ctx context.Context, lead *Lead) delivery.Outcome {
	if h.webhook == nil {
		h.logger.Warn("webhook not configured, skipping automation trigger", "submission_id", lead.SubmissionID)
		return delivery.Unavailable(delivery.ChannelWebhook)
	}
	return h.webhook.Send(ctx, delivery.LeadPayload{
		Name:         lead.Name,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Service:      lead.Service,
		Message:      lead.Message,
		Timestamp:    lead.SubmittedAt,
		Source:       lead.Source,
		SubmissionID: lead.SubmissionID,
		LeadID:       lead.LeadID,
	})
}

// ListLeadsResponse is the response for listing leads
type ListLeadsResponse struct {
	Leads  []*Lead `json:"leads"`
	Count  int     `json:"count"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// List handles GET /api/leads requests
func (h *SubmitHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
		return
	}

	filter := ListFilter{Limit: 50}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	found, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		http.Error(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ListLeadsResponse{
		Leads:  found,
		Count:  len(found),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}, h.logger)
}

// decodeSubmission accepts JSON or form-encoded bodies.
func decodeSubmission(r *http.Request) (Submission, error) {
	var sub Submission

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return sub, err
		}
		sub.Name = r.FormValue("name")
		sub.Email = r.FormValue("email")
		sub.Phone = r.FormValue("phone")
		sub.Service = r.FormValue("service")
		sub.Message = r.FormValue("message")
		sub.BotField = r.FormValue("bot-field")
		sub.SubmissionID = r.FormValue("submissionId")
		if sub.SubmissionID == "" {
			sub.SubmissionID = r.FormValue("submission_id")
		}
		return sub, nil
	}

	err := json.NewDecoder(r.Body).Decode(&sub)
	return sub, err
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *logging.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
