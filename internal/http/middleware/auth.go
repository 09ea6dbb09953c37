package middleware

import (
	"net/http"
	"strings"

	"points_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT requires a valid bearer token and puts the resolved user id into the
// gin context under "user_id".
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := tokenUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalJWT resolves a token when one is present but lets anonymous
// requests through. Rain status uses it to fill claimedByViewer.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := tokenUserID(c); ok {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func tokenUserID(c *gin.Context) (int64, bool) {
	auth := c.GetHeader("Authorization")
	token := ""
	if strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	} else if q := c.Query("token"); q != "" {
		token = q
	}
	if token == "" {
		return 0, false
	}

	userID, err := service.ParseJWT(token)
	if err != nil {
		return 0, false
	}
	return userID, true
}
