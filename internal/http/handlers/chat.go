package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"points_platform/internal/chat"
	"points_platform/internal/domain"
	"points_platform/internal/repository"
	"points_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMessages returns the retained chat window, oldest first. Public.
func (h *Handler) ListMessages(c *gin.Context) {
	views, err := h.ChatService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	if views == nil {
		views = []domain.ChatMessageView{}
	}
	c.JSON(http.StatusOK, views)
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

// PostMessage runs the full ingestion pipeline for one message.
func (h *Handler) PostMessage(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req PostMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	view, err := h.ChatService.Post(c.Request.Context(), userID, req.Content)
	if err != nil {
		ChatMessages.WithLabelValues(postResultLabel(err)).Inc()
		h.rejectPost(c, err)
		return
	}

	ChatMessages.WithLabelValues("posted").Inc()
	c.JSON(http.StatusCreated, view)
}

// postResultLabel classifies a pipeline failure for the messages counter:
// moderation outcomes count as "rejected", everything else as "error".
func postResultLabel(err error) string {
	var muted *service.MutedError

	switch {
	case errors.Is(err, chat.ErrEmpty),
		errors.Is(err, chat.ErrTooLong),
		errors.Is(err, chat.ErrLink),
		errors.Is(err, chat.ErrUnsupportedChars),
		errors.Is(err, chat.ErrProfanity),
		errors.As(err, &muted):
		return "rejected"
	default:
		return "error"
	}
}

// rejectPost maps pipeline failures onto user-facing reasons.
func (h *Handler) rejectPost(c *gin.Context, err error) {
	var muted *service.MutedError

	switch {
	case errors.Is(err, chat.ErrEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty."})
	case errors.Is(err, chat.ErrTooLong):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Message too long. Max %d characters.", h.Cfg.ChatMaxLength),
		})
	case errors.Is(err, chat.ErrLink):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Links are not allowed in chat."})
	case errors.Is(err, chat.ErrUnsupportedChars):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported characters detected. Use standard text or emoji."})
	case errors.Is(err, chat.ErrProfanity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Watch the language. Message rejected."})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
	case errors.As(err, &muted):
		c.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("You are muted until %s.", muted.Until.Format(time.RFC3339)),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to post message"})
	}
}
