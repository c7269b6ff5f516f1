package handlers

import (
	"net/http"
	"time"

	"nipco-portal/internal/chat"

	"github.com/gin-gonic/gin"
)

// Bridge is the shared assistant bridge, wired in main.go.
var Bridge *chat.Bridge

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatContext struct {
	Page          string            `json:"page"`
	Timestamp     string            `json:"timestamp"`
	AppState      map[string]string `json:"app_state"`
	RecentActions []string          `json:"recent_actions"`
}

type ChatRequest struct {
	Messages  []ChatMessage `json:"messages" binding:"required"`
	Context   ChatContext   `json:"context"`
	SessionID string        `json:"session_id"`
}

// --- POST: /api/chat ---
// Forwards the latest user message through the bridge. The bridge never
// errors; a failed upstream call comes back as a fallback reply with the
// connection status flipped, so this endpoint always answers 200.
func PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages are required", "code": "bad_request"})
		return
	}

	var userMsg string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			userMsg = req.Messages[i].Content
			break
		}
	}
	if userMsg == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No user message found", "code": "bad_request"})
		return
	}

	snap := chat.BuildSnapshot(req.Context.Page, req.Context.AppState, req.Context.RecentActions)
	reply := Bridge.SendMessage(c.Request.Context(), userMsg, snap)
	failed := Bridge.Status() != chat.StatusConnected

	session, err := chat.AppendToSession(req.SessionID, userMsg, reply, snap, failed)
	resp := gin.H{
		"message":   reply,
		"context":   snap,
		"timestamp": time.Now().Format(time.RFC3339),
		"status":    Bridge.Status(),
	}
	if err == nil && session != nil {
		resp["session_id"] = session.ID
	}

	c.JSON(http.StatusOK, resp)
}

// --- GET: /api/chat ---
// Health-check variant: probes the upstream and reports the credential
// situation so the UI can prompt for configuration instead of retrying.
func ChatHealth(c *gin.Context) {
	health := Bridge.HealthCheck(c.Request.Context())
	c.JSON(http.StatusOK, health)
}

// --- GET: /api/chat/sessions ---
func GetChatSessions(c *gin.Context) {
	sessions, err := chat.ListSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// --- DELETE: /api/chat/sessions/:sessionId ---
func DeleteChatSession(c *gin.Context) {
	if err := chat.DeleteSession(c.Param("sessionId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete chat session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat session deleted"})
}
