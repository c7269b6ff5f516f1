package chat

import (
	"encoding/json"
	"time"

	"nipco-portal/internal/database"
	"nipco-portal/internal/models"

	"github.com/google/uuid"
)

// Message is one entry in a persisted chat session. Timestamps travel as
// ISO strings and are parsed back into time values on load.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
	Context   *Snapshot `json:"context,omitempty"`
	Error     bool      `json:"error,omitempty"`
}

// SessionView is a deserialized chat session as the frontend stores it.
type SessionView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ListSessions loads every stored session, newest first. A session whose
// message payload fails to parse is returned with an empty message list
// rather than breaking the whole listing.
func ListSessions() ([]SessionView, error) {
	var rows []models.ChatSession
	if err := database.DB.Order("last_updated desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]SessionView, 0, len(rows))
	for _, row := range rows {
		view := SessionView{
			ID:          row.ID,
			Title:       row.Title,
			CreatedAt:   row.CreatedAt,
			LastUpdated: row.LastUpdated,
		}
		if err := json.Unmarshal([]byte(row.Messages), &view.Messages); err != nil {
			view.Messages = []Message{}
		}
		views = append(views, view)
	}
	return views, nil
}

// AppendToSession adds a user/assistant message pair to a session,
// creating the session when sessionID is empty. The session title is the
// first user message, truncated for display.
func AppendToSession(sessionID string, userMsg, reply string, snap Snapshot, failed bool) (*SessionView, error) {
	now := time.Now()

	var row models.ChatSession
	var messages []Message

	if sessionID != "" {
		if err := database.DB.First(&row, "id = ?", sessionID).Error; err == nil {
			if err := json.Unmarshal([]byte(row.Messages), &messages); err != nil {
				messages = nil
			}
		} else {
			sessionID = ""
		}
	}

	if sessionID == "" {
		title := userMsg
		if len(title) > 40 {
			title = title[:40] + "…"
		}
		row = models.ChatSession{
			ID:        uuid.NewString(),
			Title:     title,
			CreatedAt: now,
		}
	}

	messages = append(messages,
		Message{ID: uuid.NewString(), Text: userMsg, IsUser: true, Timestamp: now, Context: &snap},
		Message{ID: uuid.NewString(), Text: reply, IsUser: false, Timestamp: now, Error: failed},
	)

	payload, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}
	row.Messages = string(payload)
	row.LastUpdated = now

	if err := database.DB.Save(&row).Error; err != nil {
		return nil, err
	}

	return &SessionView{
		ID:          row.ID,
		Title:       row.Title,
		Messages:    messages,
		CreatedAt:   row.CreatedAt,
		LastUpdated: row.LastUpdated,
	}, nil
}

// DeleteSession removes a stored session.
func DeleteSession(sessionID string) error {
	return database.DB.Delete(&models.ChatSession{}, "id = ?", sessionID).Error
}
