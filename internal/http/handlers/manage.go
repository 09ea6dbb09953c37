package handlers

import (
	"errors"
	"net/http"

	"points_platform/internal/repository"

	"github.com/gin-gonic/gin"
)

type ManageRequest struct {
	Action    string `json:"action"`
	MessageID int64  `json:"messageId"`
	UserID    int64  `json:"userId"`
	Minutes   *int   `json:"minutes"`
}

// ManageChat handles the admin moderation actions: message deletion and
// timed mutes.
func (h *Handler) ManageChat(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	var req ManageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	ctx := c.Request.Context()

	switch req.Action {
	case "delete":
		if req.MessageID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "messageId required"})
			return
		}
		if err := h.Moderation.DeleteMessage(ctx, req.MessageID); err != nil {
			if errors.Is(err, repository.ErrMessageNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})

	case "timeout":
		if req.UserID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
			return
		}
		until, err := h.Moderation.TimeoutUser(ctx, req.UserID, req.Minutes)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mute user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "muted", "mutedUntil": until})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
	}
}
