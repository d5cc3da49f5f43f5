package handlers

import (
	"linkbio/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("linkbio_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public API
	r.POST("/api/register", h.RegisterUser)
	r.POST("/api/login", h.LoginUser)
	r.POST("/api/logout", h.LogoutUser)

	// Explicit short-link entry points. The path prefix already marks intent,
	// so these skip the normalizer and run the short-code lookup only.
	r.GET("/l/:short_code", h.RedirectShortCode)
	r.GET("/link/:short_code", h.RedirectShortCode)
	r.GET("/l/:short_code/qr.png", h.ShortCodeQR)

	// Link management and stats. GET interprets :id as a user id, DELETE as
	// a link id; gin requires a single wildcard name per position.
	r.GET("/links/:id", h.ListLinks)
	r.GET("/user/:user_id/link-stats", h.UserLinkStats)

	authorized := r.Group("/")
	authorized.Use(h.AuthRequired())
	{
		authorized.POST("/links", h.CreateLink)
		authorized.DELETE("/links/:id", h.DeleteLink)
		authorized.PUT("/api/settings", h.UpdateSettings)
	}

	// Catch-all identifier dispatcher, must be registered last.
	r.GET("/:identifier", h.ResolveIdentifier)

	return r
}
