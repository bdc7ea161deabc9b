package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/trackswipe/notify"
)

func TestNewWebhookReturnsNoopWhenURLMissing(t *testing.T) {
	n := notify.NewWebhook("  ", 0)
	if err := n.NotifyApproved(context.Background(), "1"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if _, ok := n.(*notify.Webhook); ok {
		t.Fatal("expected a noop notifier for an empty url")
	}
}

func TestWebhookPostsSongID(t *testing.T) {
	var (
		gotMethod, gotType string
		gotBody            map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := notify.NewWebhook(srv.URL, time.Second)
	if err := n.NotifyApproved(context.Background(), "42"); err != nil {
		t.Fatalf("NotifyApproved: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("content type = %q, want application/json", gotType)
	}
	if gotBody["song_id"] != "42" {
		t.Errorf("body = %v, want song_id 42", gotBody)
	}
}

func TestWebhookNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := notify.NewWebhook(srv.URL, time.Second).NotifyApproved(context.Background(), "1")
	if err == nil {
		t.Fatal("expected an error for 502")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want status and body", err)
	}
}

func TestWebhookTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := notify.NewWebhook(srv.URL, 50*time.Millisecond).NotifyApproved(context.Background(), "1")
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestWebhookCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := notify.NewWebhook(srv.URL, time.Second).NotifyApproved(ctx, "1"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
