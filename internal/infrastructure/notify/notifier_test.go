package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/repoforge/repoforge/pkg/domain/settings"
)

func newTestNotifier(deadLetter *DeadLetterStore) *Notifier {
	n := NewNotifier(deadLetter)
	n.sleep = func(time.Duration) {}
	return n
}

func TestNotifyDeliversSignedPayload(t *testing.T) {
	var gotSig atomic.Value
	var gotBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody.Store(body)
		gotSig.Store(r.Header.Get("X-RepoForge-Signature"))
	}))
	defer srv.Close()

	n := newTestNotifier(nil)
	endpoints := []settings.NotificationEndpoint{
		{URL: srv.URL, Secret: "hunter2", Events: []string{EventRepositoryCreated}},
	}
	n.Notify(context.Background(), endpoints, NewEvent(EventRepositoryCreated, "acme", "widgets", nil))

	body, _ := gotBody.Load().([]byte)
	if body == nil {
		t.Fatal("no delivery received")
	}
	mac := hmac.New(sha256.New, []byte("hunter2"))
	mac.Write(body)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if got := gotSig.Load(); got != want {
		t.Errorf("signature = %v, want %v", got, want)
	}
}

func TestNotifySkipsNonMatchingEndpoints(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	inactive := false
	n := newTestNotifier(nil)
	endpoints := []settings.NotificationEndpoint{
		{URL: srv.URL, Events: []string{EventProvisioningFailed}},
		{URL: srv.URL, Events: []string{EventRepositoryCreated}, Active: &inactive},
		{URL: srv.URL, Events: []string{"*"}},
	}
	n.Notify(context.Background(), endpoints, NewEvent(EventRepositoryCreated, "acme", "widgets", nil))

	if got := hits.Load(); got != 1 {
		t.Errorf("deliveries = %d, want only the wildcard endpoint", got)
	}
}

func TestNotifyRetriesThenDeadLetters(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	store := NewDeadLetterStore(filepath.Join(t.TempDir(), "dead.jsonl"))
	n := newTestNotifier(store)
	endpoints := []settings.NotificationEndpoint{
		{URL: srv.URL, Events: []string{EventSettingsApplied}},
	}
	n.Notify(context.Background(), endpoints, NewEvent(EventSettingsApplied, "acme", "widgets", nil))

	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
	entries, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dead letters = %d, want 1", len(entries))
	}
	if entries[0].EventType != EventSettingsApplied || entries[0].Attempts != 3 {
		t.Errorf("dead letter = %+v", entries[0])
	}
}

func TestNotifyRecoversMidRetry(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 2 {
			http.Error(w, "flaky", http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	store := NewDeadLetterStore(filepath.Join(t.TempDir(), "dead.jsonl"))
	n := newTestNotifier(store)
	endpoints := []settings.NotificationEndpoint{
		{URL: srv.URL, Events: []string{EventRepositoryConfigured}},
	}
	n.Notify(context.Background(), endpoints, NewEvent(EventRepositoryConfigured, "acme", "widgets", nil))

	if got := attempts.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
	entries, _ := store.ReadAll()
	if len(entries) != 0 {
		t.Errorf("dead letters = %d, want none after recovery", len(entries))
	}
}

func TestDeadLetterStoreRoundTrip(t *testing.T) {
	store := NewDeadLetterStore(filepath.Join(t.TempDir(), "dead.jsonl"))

	entries, err := store.ReadAll()
	if err != nil || entries != nil {
		t.Fatalf("empty store: entries=%v err=%v", entries, err)
	}
	for i := 0; i < 2; i++ {
		if err := store.Append(DeadLetter{URL: "https://x.example.com", EventType: EventRepositoryCreated, Attempts: 3}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	entries, err = store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %d, want 2", len(entries))
	}
}

func TestDeadLetterStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dead.jsonl")
	store := NewDeadLetterStore(path)

	if err := store.Append(DeadLetter{URL: "https://a.example.com", Attempts: 3}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("{not json}\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()
	if err := store.Append(DeadLetter{URL: "https://b.example.com", Attempts: 3}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 surviving the corrupt line", len(entries))
	}
	if entries[1].URL != "https://b.example.com" {
		t.Errorf("entry after corrupt line = %+v", entries[1])
	}
}
