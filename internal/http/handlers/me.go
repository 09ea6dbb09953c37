package handlers

import (
	"net/http"

	"points_platform/internal/domain"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's account summary.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"balance":        domain.FormatPoints(user.Balance),
		"pending":        domain.FormatPoints(user.Pending),
		"level":          domain.Level(user.Balance, user.Pending),
		"isAdmin":        user.IsAdmin,
		"chatMutedUntil": user.ChatMutedUntil,
	})
}
