// Package chat is the bridge between the portal UI and the AI assistant.
// It snapshots a bounded slice of app state into a system prompt, forwards
// the user's message upstream, and degrades to canned answers when the
// upstream is unreachable. Callers never see an error from SendMessage.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Connection statuses surfaced to the UI indicator.
const (
	StatusChecking     = "checking"
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusConfigError  = "config_error"
)

// Caps on what the bridge will carry upstream.
const (
	MaxMessageLen   = 2000
	MaxStateEntries = 10
	MaxStateKeyLen  = 50
	MaxStateValLen  = 200
	MaxPromptData   = 1000
)

// SessionStorageKey is the app-state entry holding chat history. It is
// always excluded from snapshots so the assistant never feeds its own
// transcript back into the prompt.
const SessionStorageKey = "nipco_chat_sessions"

// ErrMissingCredential marks an upstream failure caused by a missing or
// rejected API key, which the status machine reports as config_error so
// the UI prompts for configuration instead of silently retrying.
var ErrMissingCredential = errors.New("chat: missing or invalid API credential")

// Completer is the upstream chat completion call.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Snapshot is the bounded view of app state sent with each message.
type Snapshot struct {
	Page          string            `json:"page"`
	Timestamp     time.Time         `json:"timestamp"`
	AppState      map[string]string `json:"app_state,omitempty"`
	RecentActions []string          `json:"recent_actions,omitempty"`
}

// BuildSnapshot applies the caps: at most MaxStateEntries entries, long
// keys dropped, long values truncated, the chat-session entry excluded.
func BuildSnapshot(page string, state map[string]string, actions []string) Snapshot {
	snap := Snapshot{
		Page:      page,
		Timestamp: time.Now(),
	}

	if len(state) > 0 {
		snap.AppState = make(map[string]string)
		for k, v := range state {
			if len(snap.AppState) >= MaxStateEntries {
				break
			}
			if k == SessionStorageKey || len(k) >= MaxStateKeyLen {
				continue
			}
			if len(v) > MaxStateValLen {
				v = v[:MaxStateValLen]
			}
			snap.AppState[k] = v
		}
	}

	if len(actions) > 5 {
		actions = actions[len(actions)-5:]
	}
	snap.RecentActions = actions
	return snap
}

// SystemPrompt renders the snapshot into the instruction block sent
// upstream. Serialized app data is capped at MaxPromptData characters.
func (s Snapshot) SystemPrompt() string {
	data, _ := json.Marshal(struct {
		AppState      map[string]string `json:"app_state,omitempty"`
		RecentActions []string          `json:"recent_actions,omitempty"`
	}{s.AppState, s.RecentActions})

	serialized := string(data)
	if len(serialized) > MaxPromptData {
		serialized = serialized[:MaxPromptData]
	}

	return fmt.Sprintf(`SYSTEM: Today is %s. You are the NIPCO Portal assistant for a network of fuel stations.
The user is currently on the "%s" page.

RULES:
1. Answer questions about sales, tank levels, purchase orders and staff using the app data below.
2. Keep answers short and practical; amounts are in Naira, volumes in liters.
3. If the data does not cover the question, say so instead of guessing.

APP DATA: %s`, s.Timestamp.Format("2006-01-02"), s.Page, serialized)
}

// Bridge holds the connection-status state machine and the upstream client.
type Bridge struct {
	mu        sync.Mutex
	status    string
	completer Completer
}

// NewBridge starts in the checking state. A nil completer means no API key
// was configured; every send then falls back and reports config_error.
func NewBridge(completer Completer) *Bridge {
	return &Bridge{status: StatusChecking, completer: completer}
}

// Status returns the current connection status.
func (b *Bridge) Status() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *Bridge) setStatus(s string) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}

// SendMessage forwards the user message upstream and returns the reply.
// It never returns an error: upstream failures resolve to a deterministic,
// context-aware fallback string and flip the connection status.
func (b *Bridge) SendMessage(ctx context.Context, text string, snap Snapshot) string {
	if len(text) > MaxMessageLen {
		text = text[:MaxMessageLen]
	}
	if text == "" {
		return "Please type a question and I'll do my best to help."
	}

	if b.completer == nil {
		b.setStatus(StatusConfigError)
		return fallbackReply(snap)
	}

	reply, err := b.completer.Complete(ctx, snap.SystemPrompt(), text)
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			b.setStatus(StatusConfigError)
		} else {
			b.setStatus(StatusDisconnected)
		}
		return fallbackReply(snap)
	}

	b.setStatus(StatusConnected)
	if reply == "" {
		reply = "I completed the request."
	}
	return reply
}

// fallbackReply is the canned response used whenever the upstream call
// fails. Deterministic for a given page so the UI behaves predictably.
func fallbackReply(snap Snapshot) string {
	base := "I'm offline right now, but the dashboards are still live."
	switch snap.Page {
	case "dashboard":
		return base + " Your station cards show today's revenue and shift totals; check the tank gauges for low-level warnings."
	case "sales":
		return base + " You can keep recording sales; entries are validated and saved as usual."
	case "orders":
		return base + " Purchase orders and offloads still work; status changes are saved immediately."
	default:
		return base + " Please try the assistant again in a moment."
	}
}

// Health is the GET /api/chat payload.
type Health struct {
	Status      string `json:"status"`
	HasAPIKey   bool   `json:"hasApiKey"`
	ValidAPIKey bool   `json:"validApiKey"`
	Message     string `json:"message"`
}

// HealthCheck probes the upstream with a trivial prompt and re-enters the
// status machine with the result.
func (b *Bridge) HealthCheck(ctx context.Context) Health {
	if b.completer == nil {
		b.setStatus(StatusConfigError)
		return Health{
			Status:    StatusConfigError,
			HasAPIKey: false,
			Message:   "No API key configured. Set GEMINI_API_KEY in the server environment.",
		}
	}

	_, err := b.completer.Complete(ctx, "SYSTEM: health check", "ping")
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			b.setStatus(StatusConfigError)
			return Health{
				Status:    StatusConfigError,
				HasAPIKey: true,
				Message:   "The configured API key was rejected. Check GEMINI_API_KEY.",
			}
		}
		b.setStatus(StatusDisconnected)
		return Health{
			Status:    StatusDisconnected,
			HasAPIKey: true,
			Message:   "The assistant upstream is unreachable.",
		}
	}

	b.setStatus(StatusConnected)
	return Health{
		Status:      StatusConnected,
		HasAPIKey:   true,
		ValidAPIKey: true,
		Message:     "Assistant is ready.",
	}
}
