package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"points_platform/internal/domain"
	"points_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// RainStatus reports the active rain, if any, for the current viewer.
// Works unauthenticated; claimedByViewer is filled only with a token.
func (h *Handler) RainStatus(c *gin.Context) {
	viewerID, _ := getUserID(c)

	status, err := h.RainService.Status(c.Request.Context(), viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rain status"})
		return
	}
	if status == nil {
		c.JSON(http.StatusOK, gin.H{"rain": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rain": status})
}

type RainStartRequest struct {
	Amount float64 `json:"amount"`
}

// RainStart creates a new rain (admin only).
func (h *Handler) RainStart(c *gin.Context) {
	admin, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	var req RainStartRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	rain, err := h.RainService.Start(c.Request.Context(), admin, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRainAmountInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Positive rain amount required."})
		case errors.Is(err, service.ErrRainAmountTooHigh):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Rain amount too high. Max %.0f.", h.Cfg.RainMaxAmount),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start rain"})
		}
		return
	}

	RainStarts.Inc()
	c.JSON(http.StatusOK, gin.H{"rain": gin.H{
		"id":        rain.ID,
		"amount":    rain.Amount,
		"createdAt": rain.CreatedAt,
	}})
}

// RainClaim credits the active rain to the caller, at most once.
func (h *Handler) RainClaim(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	amount, balance, err := h.RainService.Claim(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveRain):
			c.JSON(http.StatusNotFound, gin.H{"error": "No active rain."})
		case errors.Is(err, service.ErrAlreadyClaimed):
			c.JSON(http.StatusConflict, gin.H{"error": "Rain already claimed."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to claim rain"})
		}
		return
	}

	RainClaims.Inc()
	c.JSON(http.StatusOK, gin.H{
		"amount":  domain.FormatPoints(amount),
		"balance": domain.FormatPoints(balance),
	})
}
