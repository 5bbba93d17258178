// Package notify delivers special sun reminders to the configured
// notification webhook.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/giftgrug/giftgrug/pkg/models"
)

const eventReminderDue = "special_sun.reminder_due"

// Notifier posts reminder events to a webhook endpoint
type Notifier struct {
	client *http.Client
	url    string
	secret string
}

// Event is the webhook payload envelope
type Event struct {
	ID        string             `json:"id"`
	Event     string             `json:"event"`
	Timestamp time.Time          `json:"timestamp"`
	Data      models.ReminderJob `json:"data"`
}

// New creates a notifier for the given webhook URL. The secret signs every
// payload so the receiver can verify origin.
func New(url, secret string) *Notifier {
	return &Notifier{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		url:    url,
		secret: secret,
	}
}

// Configured reports whether a webhook URL is present
func (n *Notifier) Configured() bool {
	return n.url != ""
}

// DeliverReminder posts a reminder event to the webhook. A non-2xx response
// is an error so the caller can requeue the job.
func (n *Notifier) DeliverReminder(ctx context.Context, job *models.ReminderJob) error {
	if n.url == "" {
		return fmt.Errorf("notification webhook not configured")
	}

	event := Event{
		ID:        uuid.New().String(),
		Event:     eventReminderDue,
		Timestamp: time.Now().UTC(),
		Data:      *job,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "GiftGrug-Webhook/1.0")
	req.Header.Set("X-Webhook-Event", event.Event)
	req.Header.Set("X-Webhook-Delivery", event.ID)
	if n.secret != "" {
		req.Header.Set("X-Webhook-Signature", n.signature(payload))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// signature generates HMAC-SHA256 signature for webhook payload
func (n *Notifier) signature(payload []byte) string {
	h := hmac.New(sha256.New, []byte(n.secret))
	h.Write(payload)
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}
