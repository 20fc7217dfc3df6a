package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/maheynails/studio-api/internal/services"
)

const maxChatMessageLen = 1000

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

// HandleChat answers a visitor question. The deterministic knowledge-base
// responder runs first; only unmatched questions reach the generative model.
// Upstream failures are returned as a friendly 200 reply so the chat widget
// never breaks; 400 is reserved for malformed input.
func (h *Handler) HandleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Please provide a valid message",
			"suggestion": "Ask about services, bookings, or anything else about the studio",
		})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Please provide a valid message",
			"suggestion": "Ask about services, bookings, or anything else about the studio",
		})
		return
	}
	// The limit is in characters, not bytes, so multi-byte input is not
	// penalized.
	if utf8.RuneCountInString(req.Message) > maxChatMessageLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Message too long",
			"suggestion": "Please keep your question under 1000 characters",
		})
		return
	}

	metadata := func(model string, local bool) gin.H {
		md := gin.H{
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"conversationId": nil,
			"local":          local,
		}
		if req.ConversationID != "" {
			md["conversationId"] = req.ConversationID
		}
		if model != "" {
			md["model"] = model
		}
		return md
	}

	if reply, ok := h.Knowledge.LocalReply(message); ok {
		c.Header("Cache-Control", "no-cache")
		c.JSON(http.StatusOK, gin.H{"reply": reply, "metadata": metadata("", true)})
		return
	}

	prompt := services.BuildPrompt(h.Knowledge, message)
	reply, model, err := h.ChatSvc.Generate(c.Request.Context(), prompt)
	if err != nil {
		// Mask the failure: the widget shows the fallback text and the
		// studio's contact details instead of an error state.
		log.Printf("chat: generative fallback failed: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"reply":    h.Knowledge.FallbackReply(),
			"metadata": metadata("", false),
		})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.JSON(http.StatusOK, gin.H{"reply": reply, "metadata": metadata(model, false)})
}
