package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testPayload() LeadPayload {
	return LeadPayload{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Phone:        "5551234567",
		Service:      "consultation",
		Message:      "Please call me",
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Source:       "website",
		SubmissionID: "sub-1",
		LeadID:       "lead-1",
	}
}

func TestWebhookSender_Send(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode webhook body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewWebhookSender(NewBoundedClient(), srv.URL, time.Second, nil)
	outcome := sender.Send(context.Background(), testPayload())

	if !outcome.Succeeded {
		t.Fatalf("expected success, got %+v", outcome)
	}

	for key, want := range map[string]string{
		"name":         "Jane Doe",
		"email":        "jane@example.com",
		"phone":        "5551234567",
		"service":      "consultation",
		"message":      "Please call me",
		"source":       "website",
		"submissionId": "sub-1",
		"leadId":       "lead-1",
	} {
		if got[key] != want {
			t.Errorf("webhook body %s = %v, want %q", key, got[key], want)
		}
	}
	if _, ok := got["timestamp"]; !ok {
		t.Error("webhook body missing timestamp")
	}
}

func TestWebhookSender_OmitsEmptyLeadID(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	payload := testPayload()
	payload.LeadID = ""

	sender := NewWebhookSender(NewBoundedClient(), srv.URL, time.Second, nil)
	sender.Send(context.Background(), payload)

	if _, ok := got["leadId"]; ok {
		t.Error("expected leadId to be omitted when persistence produced none")
	}
}

func TestWebhookSender_NoURL(t *testing.T) {
	sender := NewWebhookSender(NewBoundedClient(), "", time.Second, nil)
	outcome := sender.Send(context.Background(), testPayload())

	if outcome.FailureKind != FailureUnavailable {
		t.Errorf("expected unavailable, got %+v", outcome)
	}
	if outcome.Channel != ChannelWebhook {
		t.Errorf("expected webhook channel, got %s", outcome.Channel)
	}
}
