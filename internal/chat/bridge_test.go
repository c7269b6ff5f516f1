package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
	last  string
}

func (s *stubCompleter) Complete(_ context.Context, _ string, userMessage string) (string, error) {
	s.calls++
	s.last = userMessage
	return s.reply, s.err
}

func TestSendMessageSuccessSetsConnected(t *testing.T) {
	stub := &stubCompleter{reply: "Revenue today is 2,075,000 naira."}
	b := NewBridge(stub)

	if b.Status() != StatusChecking {
		t.Fatalf("bridge should start in checking, got %s", b.Status())
	}

	reply := b.SendMessage(context.Background(), "How are sales today?", BuildSnapshot("dashboard", nil, nil))
	if reply != stub.reply {
		t.Fatalf("expected upstream reply, got %q", reply)
	}
	if b.Status() != StatusConnected {
		t.Fatalf("success must set connected, got %s", b.Status())
	}
}

func TestSendMessageFallbackNeverErrors(t *testing.T) {
	stub := &stubCompleter{err: errors.New("upstream returned 503")}
	b := NewBridge(stub)

	reply := b.SendMessage(context.Background(), "hello", BuildSnapshot("sales", nil, nil))
	if reply == "" {
		t.Fatalf("fallback reply must be a non-empty string")
	}
	if b.Status() != StatusDisconnected {
		t.Fatalf("failure must set disconnected, got %s", b.Status())
	}

	// The fallback is deterministic per page
	again := b.SendMessage(context.Background(), "hello", BuildSnapshot("sales", nil, nil))
	if again != reply {
		t.Fatalf("fallback should be deterministic: %q vs %q", reply, again)
	}
}

func TestSendMessageRecoversAfterFailure(t *testing.T) {
	stub := &stubCompleter{err: errors.New("boom")}
	b := NewBridge(stub)

	b.SendMessage(context.Background(), "hi", Snapshot{})
	if b.Status() != StatusDisconnected {
		t.Fatalf("expected disconnected, got %s", b.Status())
	}

	stub.err = nil
	stub.reply = "back online"
	b.SendMessage(context.Background(), "hi", Snapshot{})
	if b.Status() != StatusConnected {
		t.Fatalf("successful call must reset status to connected, got %s", b.Status())
	}
}

func TestCredentialErrorIsConfigError(t *testing.T) {
	stub := &stubCompleter{err: fmt.Errorf("wrap: %w", ErrMissingCredential)}
	b := NewBridge(stub)

	b.SendMessage(context.Background(), "hi", Snapshot{})
	if b.Status() != StatusConfigError {
		t.Fatalf("credential failure must set config_error, got %s", b.Status())
	}
}

func TestNilCompleterIsConfigError(t *testing.T) {
	b := NewBridge(nil)
	reply := b.SendMessage(context.Background(), "hi", Snapshot{})
	if reply == "" {
		t.Fatalf("missing key still resolves to a fallback string")
	}
	if b.Status() != StatusConfigError {
		t.Fatalf("nil completer must report config_error, got %s", b.Status())
	}

	h := b.HealthCheck(context.Background())
	if h.Status != StatusConfigError || h.HasAPIKey {
		t.Fatalf("health check should report missing key: %+v", h)
	}
}

func TestLongMessagesAreTruncated(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	b := NewBridge(stub)

	long := strings.Repeat("x", MaxMessageLen+500)
	b.SendMessage(context.Background(), long, Snapshot{})
	if len(stub.last) != MaxMessageLen {
		t.Fatalf("expected message truncated to %d chars, got %d", MaxMessageLen, len(stub.last))
	}
}

func TestHealthCheckReentersStatus(t *testing.T) {
	stub := &stubCompleter{err: errors.New("down")}
	b := NewBridge(stub)

	h := b.HealthCheck(context.Background())
	if h.Status != StatusDisconnected || !h.HasAPIKey || h.ValidAPIKey {
		t.Fatalf("unexpected health: %+v", h)
	}

	stub.err = nil
	stub.reply = "pong"
	h = b.HealthCheck(context.Background())
	if h.Status != StatusConnected || !h.ValidAPIKey {
		t.Fatalf("expected connected health, got %+v", h)
	}
	if b.Status() != StatusConnected {
		t.Fatalf("health check must update bridge status, got %s", b.Status())
	}
}

func TestBuildSnapshotAppliesCaps(t *testing.T) {
	state := map[string]string{
		SessionStorageKey: "must be excluded",
		strings.Repeat("k", MaxStateKeyLen): "long key dropped",
		"today_revenue":                     strings.Repeat("v", MaxStateValLen+100),
	}
	for i := 0; i < 20; i++ {
		state[fmt.Sprintf("key_%02d", i)] = "x"
	}

	snap := BuildSnapshot("dashboard", state, []string{"a", "b", "c", "d", "e", "f", "g"})

	if len(snap.AppState) > MaxStateEntries {
		t.Fatalf("app state must be capped at %d entries, got %d", MaxStateEntries, len(snap.AppState))
	}
	if _, ok := snap.AppState[SessionStorageKey]; ok {
		t.Fatalf("chat session storage must never appear in a snapshot")
	}
	if v, ok := snap.AppState["today_revenue"]; ok && len(v) > MaxStateValLen {
		t.Fatalf("values must be truncated to %d chars, got %d", MaxStateValLen, len(v))
	}
	if len(snap.RecentActions) != 5 {
		t.Fatalf("recent actions capped at 5, got %d", len(snap.RecentActions))
	}
}

func TestSystemPromptCapsSerializedData(t *testing.T) {
	state := map[string]string{}
	for i := 0; i < 10; i++ {
		state[fmt.Sprintf("key_%d", i)] = strings.Repeat("v", MaxStateValLen)
	}
	snap := BuildSnapshot("dashboard", state, nil)

	prompt := snap.SystemPrompt()
	idx := strings.Index(prompt, "APP DATA: ")
	if idx < 0 {
		t.Fatalf("prompt missing app data block")
	}
	data := prompt[idx+len("APP DATA: "):]
	if len(data) > MaxPromptData {
		t.Fatalf("serialized app data must be capped at %d chars, got %d", MaxPromptData, len(data))
	}
}
