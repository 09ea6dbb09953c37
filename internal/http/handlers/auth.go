package handlers

import (
	"net/http"

	"points_platform/internal/domain"
	"points_platform/internal/service"

	"github.com/gin-gonic/gin"
)

type DevAuthRequest struct {
	Username string `json:"username"`
}

// DevAuth mints a token for local development only. Identity verification
// proper lives outside this service; in production the route is not
// registered and tokens arrive from the session issuer.
func (h *Handler) DevAuth(c *gin.Context) {
	var req DevAuthRequest
	if err := c.BindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	ctx := c.Request.Context()

	user, err := h.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		user = &domain.User{Username: req.Username}
		if err := h.UserRepo.Create(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"balance":  domain.FormatPoints(user.Balance),
			"pending":  domain.FormatPoints(user.Pending),
		},
	})
}
