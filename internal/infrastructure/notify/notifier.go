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

	"github.com/repoforge/repoforge/pkg/domain/settings"
)

const (
	defaultTimeout = 10 * time.Second
	maxAttempts    = 3
	retryDelay     = time.Second
)

// Notifier sends provisioning events to notification endpoints.
type Notifier struct {
	client     *http.Client
	deadLetter *DeadLetterStore
	// sleep is replaceable in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewNotifier creates a notifier. deadLetter may be nil to drop failed
// deliveries.
func NewNotifier(deadLetter *DeadLetterStore) *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: defaultTimeout},
		deadLetter: deadLetter,
		sleep:      time.Sleep,
	}
}

// Payload is the JSON body sent to endpoints.
type Payload struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Data      Event     `json:"data"`
}

// Notify delivers an event to every matching active endpoint. Delivery
// failures go to the dead letter store; they never fail provisioning.
func (n *Notifier) Notify(ctx context.Context, endpoints []settings.NotificationEndpoint, event Event) {
	body, err := json.Marshal(Payload{
		EventType: event.Type,
		Timestamp: event.Timestamp,
		Data:      event,
	})
	if err != nil {
		return
	}
	for _, ep := range endpoints {
		if !ep.IsActive() || !subscribes(ep, event.Type) {
			continue
		}
		n.deliver(ctx, ep, event.Type, body)
	}
}

func subscribes(ep settings.NotificationEndpoint, eventType string) bool {
	for _, e := range ep.Events {
		if e == eventType || e == "*" {
			return true
		}
	}
	return false
}

func (n *Notifier) deliver(ctx context.Context, ep settings.NotificationEndpoint, eventType string, body []byte) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := n.send(ctx, ep, body); err != nil {
			lastErr = err
			if attempt < maxAttempts {
				n.sleep(retryDelay * time.Duration(attempt)) // linear backoff
			}
			continue
		}
		return
	}
	if n.deadLetter != nil && lastErr != nil {
		_ = n.deadLetter.Append(DeadLetter{
			Timestamp: time.Now().UTC(),
			URL:       ep.URL,
			EventType: eventType,
			Payload:   string(body),
			Error:     lastErr.Error(),
			Attempts:  maxAttempts,
		})
	}
}

func (n *Notifier) send(ctx context.Context, ep settings.NotificationEndpoint, body []byte) error {
	if ep.TimeoutSeconds != nil && *ep.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*ep.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "RepoForge-Notifier/1.0")
	if ep.Secret != "" {
		req.Header.Set("X-RepoForge-Signature", sign(body, ep.Secret))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// sign computes HMAC-SHA256 of the payload using the secret.
func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
