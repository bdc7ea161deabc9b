// Package notify delivers approval notifications to an HTTP webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phanxgames/trackswipe"
)

const (
	userAgent      = "trackswipe/0.1.0"
	defaultTimeout = 10 * time.Second
)

// approvalPayload is the webhook request body.
type approvalPayload struct {
	SongID string `json:"song_id"`
}

// NewWebhook builds a notifier that POSTs approvals to url. When url is
// empty, a no-op notifier is returned. A non-positive timeout uses 10s.
func NewWebhook(url string, timeout time.Duration) trackswipe.Notifier {
	url = strings.TrimSpace(url)
	if url == "" {
		return noopNotifier{}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Webhook{
		endpoint: url,
		client:   &http.Client{Timeout: timeout},
	}
}

// Webhook POSTs {"song_id": id} as JSON for every approval.
type Webhook struct {
	endpoint string
	client   *http.Client
}

// NotifyApproved sends one approval. Any response outside 2xx is an error.
func (w *Webhook) NotifyApproved(ctx context.Context, id string) error {
	if w == nil || w.client == nil {
		return nil
	}
	body, err := json.Marshal(approvalPayload{SongID: id})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyApproved(context.Context, string) error { return nil }
