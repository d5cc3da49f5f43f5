package handlers

import (
	"net/http"

	"linkbio/internal/models"
	"linkbio/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user from the request: the gin
// context when API-key auth ran, the session otherwise.
func currentUserID(c *gin.Context) (uint, bool) {
	if val, exists := c.Get("user_id"); exists {
		if uid, ok := val.(uint); ok {
			return uid, true
		}
	}
	session := sessions.Default(c)
	if val := session.Get("user_id"); val != nil {
		if uid, ok := val.(uint); ok {
			return uid, true
		}
	}
	return 0, false
}

func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") != nil {
			c.Next()
			return
		}

		// Fall back to API key auth
		apiKey := c.GetHeader("X-API-Key")
		if apiKey != "" {
			var user models.User
			if err := h.db.Where("api_key = ?", apiKey).First(&user).Error; err == nil {
				c.Set("user_id", user.ID)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
