package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBoundedClient_Success(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewBoundedClient()
	outcome := client.Post(context.Background(), ChannelWebhook, srv.URL, "application/json", []byte(`{}`), time.Second)

	if !outcome.Succeeded {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if outcome.FailureKind != FailureNone {
		t.Errorf("expected failureKind none, got %s", outcome.FailureKind)
	}
	if outcome.HTTPStatus != http.StatusCreated {
		t.Errorf("expected status 201, got %d", outcome.HTTPStatus)
	}
	if outcome.Channel != ChannelWebhook {
		t.Errorf("expected channel webhook, got %s", outcome.Channel)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected content type to be forwarded, got %q", gotContentType)
	}
}

func TestBoundedClient_UpstreamRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewBoundedClient()
	outcome := client.Post(context.Background(), ChannelWebhook, srv.URL, "application/json", nil, time.Second)

	if outcome.Succeeded {
		t.Fatal("expected failure")
	}
	if outcome.FailureKind != FailureUpstreamRejected {
		t.Errorf("expected upstreamRejected, got %s", outcome.FailureKind)
	}
	if outcome.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", outcome.HTTPStatus)
	}
}

func TestBoundedClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewBoundedClient()
	timeout := 50 * time.Millisecond

	start := time.Now()
	outcome := client.Post(context.Background(), ChannelWebhook, srv.URL, "application/json", nil, timeout)
	elapsed := time.Since(start)

	if outcome.Succeeded {
		t.Fatal("expected failure")
	}
	if outcome.FailureKind != FailureTimeout {
		t.Errorf("expected timeout classification, got %s", outcome.FailureKind)
	}
	// The call must settle at the deadline plus modest cancellation overhead,
	// not wait for the hung server.
	if elapsed > timeout+500*time.Millisecond {
		t.Errorf("call took %s, deadline was %s", elapsed, timeout)
	}
	if outcome.DurationMS > (timeout + 500*time.Millisecond).Milliseconds() {
		t.Errorf("recorded duration %dms exceeds deadline plus overhead", outcome.DurationMS)
	}
}

func TestBoundedClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewBoundedClient()
	outcome := client.Post(context.Background(), ChannelWebhook, srv.URL, "application/json", nil, time.Second)

	if outcome.Succeeded {
		t.Fatal("expected failure")
	}
	if outcome.FailureKind != FailureNetwork {
		t.Errorf("expected network classification, got %s", outcome.FailureKind)
	}
	if outcome.HTTPStatus != 0 {
		t.Errorf("expected no HTTP status, got %d", outcome.HTTPStatus)
	}
}

func TestBoundedClient_EmptyURL(t *testing.T) {
	client := NewBoundedClient()
	outcome := client.Post(context.Background(), ChannelBackup, "", "application/json", nil, time.Second)

	if outcome.Succeeded {
		t.Fatal("expected refusal")
	}
	if outcome.FailureKind != FailureUnavailable {
		t.Errorf("expected unavailable, got %s", outcome.FailureKind)
	}
}

func TestBoundedClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewBoundedClient()
	outcome := client.Post(ctx, ChannelWebhook, srv.URL, "application/json", nil, time.Second)

	if outcome.Succeeded {
		t.Fatal("expected failure for a canceled context")
	}
	if outcome.FailureKind != FailureNetwork {
		t.Errorf("caller cancellation is not a deadline fire, got %s", outcome.FailureKind)
	}
}
