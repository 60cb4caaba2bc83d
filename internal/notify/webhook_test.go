package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

func captureServer(t *testing.T, got *Message) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		contentType := r.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "application/json") {
			t.Errorf("expected Content-Type to start with application/json, got %s", contentType)
		}

		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("failed to decode message: %v", err)
		}

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestSend_Success(t *testing.T) {
	var got Message
	server := captureServer(t, &got)

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	if err := client.Send(context.Background(), Message{Text: "test message"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Text != "test message" {
		t.Errorf("expected text 'test message', got %s", got.Text)
	}
}

func TestSend_ServerError(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()), WithRetry(3, time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	err = client.Send(context.Background(), Message{Text: "test"})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}

	if n := calls.Load(); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
}

func TestSend_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()), WithRetry(2, time.Second))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	if err := client.Send(context.Background(), Message{Text: "test"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := calls.Load(); n != 2 {
		t.Errorf("expected 2 attempts, got %d", n)
	}
}

func TestSend_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()), WithRetry(3, time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	if err := client.Send(context.Background(), Message{Text: "test"}); !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}

	if n := calls.Load(); n != 1 {
		t.Errorf("expected a single attempt for a 404, got %d", n)
	}
}

func TestSend_RequestError(t *testing.T) {
	client, err := New("http://localhost:1/invalid", WithHTTPClient(&http.Client{}), WithRetry(2, time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	err = client.Send(context.Background(), Message{Text: "test"})
	if !errors.Is(err, ErrNotificationFailed) {
		t.Fatalf("expected ErrNotificationFailed, got %v", err)
	}
}

func TestNotifyLead(t *testing.T) {
	var got Message
	server := captureServer(t, &got)

	client, err := New(server.URL, WithHTTPClient(server.Client()), WithLocale("en"))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	lead := store.Lead{
		Kind:          store.LeadKindContact,
		Email:         "anna@example.com",
		Name:          "Anna",
		Company:       "Example GmbH",
		CompanyDomain: "example.com",
		Message:       strings.Repeat("x", 600),
		Locale:        "de",
	}

	if err := client.NotifyLead(context.Background(), lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Text != "New lead: anna@example.com" {
		t.Errorf("unexpected fallback text %q", got.Text)
	}

	if len(got.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(got.Blocks))
	}

	if got.Blocks[0].Type != "header" {
		t.Errorf("expected first block type header, got %s", got.Blocks[0].Type)
	}

	if !strings.Contains(got.Blocks[1].Fields[2].Text, "Example GmbH (example.com)") {
		t.Errorf("expected company field, got %q", got.Blocks[1].Fields[2].Text)
	}

	if n := len([]rune(got.Blocks[2].Text.Text)); n != maxMessageLength+1 {
		t.Errorf("expected message to be truncated to %d runes, got %d", maxMessageLength+1, n)
	}
}

func TestLeadMessage_Newsletter(t *testing.T) {
	msg := LeadMessage("de", store.Lead{Kind: store.LeadKindNewsletter, Email: "a@b.at", Locale: "de"})

	if !strings.HasPrefix(msg.Text, "Neue Newsletter-Anmeldung") {
		t.Errorf("unexpected fallback text %q", msg.Text)
	}

	if len(msg.Blocks) != 2 {
		t.Errorf("expected 2 blocks, got %d", len(msg.Blocks))
	}
}

func TestReportMessage(t *testing.T) {
	snap := store.ReportSnapshot{
		Email:       "anna@example.com",
		Country:     "at",
		Regulations: []string{"dsgvo", "nis2"},
		CostMin:     2000,
		CostMax:     5100,
		Grade:       "C",
	}

	msg := ReportMessage("en", snap)

	if len(msg.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(msg.Blocks))
	}

	fields := msg.Blocks[1].Fields
	if len(fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(fields))
	}

	if !strings.Contains(fields[2].Text, "EUR 2,000") || !strings.Contains(fields[2].Text, "EUR 5,100") {
		t.Errorf("unexpected cost field %q", fields[2].Text)
	}

	if !strings.Contains(fields[4].Text, "AT") {
		t.Errorf("unexpected country field %q", fields[4].Text)
	}

	if msg.Blocks[2].Text.Text != "dsgvo, nis2" {
		t.Errorf("unexpected regulation list %q", msg.Blocks[2].Text.Text)
	}
}

func TestLeadMessage_Registration(t *testing.T) {
	registered := time.Date(2009, 3, 12, 0, 0, 0, 0, time.UTC)

	msg := LeadMessage("en", store.Lead{
		Kind:               store.LeadKindContact,
		Email:              "anna@firma.at",
		CompanyDomain:      "firma.at",
		Registrar:          "nic.at",
		DomainRegisteredAt: &registered,
		Locale:             "de",
	})

	var texts []string
	for _, f := range msg.Blocks[1].Fields {
		texts = append(texts, f.Text)
	}

	joined := strings.Join(texts, "\n")

	if !strings.Contains(joined, "2009-03-12") {
		t.Errorf("expected registration date in fields, got %q", joined)
	}

	if !strings.Contains(joined, "nic.at") {
		t.Errorf("expected registrar in fields, got %q", joined)
	}
}
