package handlers

import (
	"errors"
	"net/http"

	"linkbio/internal/models"
	"linkbio/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResolveIdentifier is the catch-all dispatcher: normalize the path segment,
// walk the resolution chain, record the visit and redirect. A miss at any
// step is not an error; it falls through to profile rendering (the app
// router's job) and finally to a plain not-found response. Only genuine
// persistence failures produce a 500.
func (h *Handler) ResolveIdentifier(c *gin.Context) {
	raw := c.Param("identifier")

	identifier, ok := services.NormalizeIdentifier(raw)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	target, err := h.resolverService.Resolve(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fallthroughProfile(c, identifier)
			return
		}
		h.logger.Error("Resolution failed", "identifier", identifier, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	switch target.Source {
	case services.SourceLink:
		h.recordVisit(c, target.Link)
		c.Redirect(http.StatusFound, target.RedirectURL)
	case services.SourceSettingsSlug:
		c.Redirect(http.StatusFound, target.RedirectURL)
	default:
		h.visitService.RecordProfileView(target.User.ID)
		h.renderProfile(c, target.User)
	}
}

// RedirectShortCode serves the explicit /l/ and /link/ entry points: the
// short-code lookup only, no normalizer, no fallbacks.
func (h *Handler) RedirectShortCode(c *gin.Context) {
	shortCode := c.Param("short_code")

	link, err := h.resolverService.ResolveShortCode(c.Request.Context(), shortCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		h.logger.Error("Short code lookup failed", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	h.recordVisit(c, link)
	c.Redirect(http.StatusFound, link.OriginalURL)
}

// recordVisit enqueues the visit without blocking the redirect. Analytics
// failures must never fail a redirect, so errors stay inside the worker.
func (h *Handler) recordVisit(c *gin.Context, link *models.Link) {
	h.visitService.RecordAsync(models.LinkVisit{
		LinkID:    link.ID,
		VisitorIP: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
		IsOwner:   h.isOwner(c, link.UserID),
	})
}

// isOwner correlates the session with the link owner. Anonymous traffic is
// always external.
func (h *Handler) isOwner(c *gin.Context, ownerID uint) bool {
	session := sessions.Default(c)
	if val := session.Get("user_id"); val != nil {
		if uid, ok := val.(uint); ok {
			return uid == ownerID
		}
	}
	return false
}

// fallthroughProfile gives hand-typed legacy usernames a last chance via
// fuzzy matching before the request is declared unmatched.
func (h *Handler) fallthroughProfile(c *gin.Context, identifier string) {
	user, err := h.usernameService.ResolveFuzzy(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		h.logger.Error("Fuzzy username lookup failed", "identifier", identifier, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	h.renderProfile(c, user)
}
