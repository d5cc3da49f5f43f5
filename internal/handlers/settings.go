package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type UpdateSettingsRequest struct {
	LinkTitle string `json:"link_title" binding:"required"`
	LinkURL   string `json:"link_url" binding:"required,url"`
}

// UpdateSettings upserts the caller's (linkTitle, linkURL) pair. The slug
// projection is refreshed in the same write, so the new slug resolves
// immediately.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settings, err := h.settingsService.Upsert(userID, req.LinkTitle, req.LinkURL, c.ClientIP())
	if err != nil {
		h.logger.Error("Failed to update settings", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
