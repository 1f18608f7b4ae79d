package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRelaySender_Send(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		form = r.PostForm
	}))
	defer srv.Close()

	sender := NewRelaySender(NewBoundedClient(), srv.URL, time.Second, nil)
	outcome := sender.Send(context.Background(), testPayload())

	if !outcome.Succeeded {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if outcome.Channel != ChannelBackup {
		t.Errorf("expected backup channel, got %s", outcome.Channel)
	}

	for key, want := range map[string]string{
		"form-name":     "contact",
		"name":          "Jane Doe",
		"email":         "jane@example.com",
		"phone":         "5551234567",
		"service":       "consultation",
		"message":       "Please call me",
		"submission_id": "sub-1",
	} {
		if got := form[key]; len(got) != 1 || got[0] != want {
			t.Errorf("form field %s = %v, want %q", key, got, want)
		}
	}
}

func TestRelaySender_NoURL(t *testing.T) {
	sender := NewRelaySender(NewBoundedClient(), "", time.Second, nil)
	outcome := sender.Send(context.Background(), testPayload())

	if outcome.FailureKind != FailureUnavailable {
		t.Errorf("expected unavailable, got %+v", outcome)
	}
}
