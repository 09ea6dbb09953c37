package handlers

import (
	"errors"
	"net/http"

	"points_platform/internal/domain"
	"points_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// SocialBonusStatus reports whether the caller already claimed the bonus.
func (h *Handler) SocialBonusStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lead, err := h.BonusService.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bonus status"})
		return
	}
	if lead == nil {
		c.JSON(http.StatusOK, gin.H{"claimed": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"claimed":   true,
		"claimedAt": lead.AwardedAt,
		"points":    domain.FormatPoints(lead.Points),
	})
}

// ClaimSocialBonus grants the one-time social bonus to the caller.
func (h *Handler) ClaimSocialBonus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lead, balance, pending, err := h.BonusService.Claim(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrBonusAlreadyClaimed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Bonus already claimed."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to grant social bonus right now."})
		return
	}

	BonusGrants.Inc()
	c.JSON(http.StatusOK, gin.H{
		"message": "Social bonus granted.",
		"balance": domain.FormatPoints(balance),
		"pending": domain.FormatPoints(pending),
		"lead": gin.H{
			"id":          lead.ID,
			"offerId":     lead.OfferID,
			"points":      domain.FormatPoints(lead.Points),
			"status":      lead.Status,
			"createdAt":   lead.CreatedAt,
			"availableAt": lead.AvailableAt,
			"awardedAt":   lead.AwardedAt,
		},
	})
}
