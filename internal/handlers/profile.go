package handlers

import (
	"net/http"

	"linkbio/internal/models"
	"linkbio/internal/services"

	"github.com/gin-gonic/gin"
)

type profileLink struct {
	models.Link
	Stats *services.VisitStats `json:"stats"`
}

// renderProfile emits the public profile payload: the user plus their active
// links, each annotated with the five-number visit summary. Presentation is
// an external concern; this payload is what the page layer consumes.
func (h *Handler) renderProfile(c *gin.Context, user *models.User) {
	links, err := h.linkService.ByUser(user.ID)
	if err != nil {
		h.logger.Error("Failed to load profile links", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	annotated := make([]profileLink, 0, len(links))
	for _, link := range links {
		if !link.IsActive {
			continue
		}
		stats, err := h.statsService.StatsForLink(link.ID)
		if err != nil {
			h.logger.Error("Failed to load link stats", "link_id", link.ID, "error", err)
			stats = &services.VisitStats{}
		}
		annotated = append(annotated, profileLink{Link: link, Stats: stats})
	}

	c.JSON(http.StatusOK, gin.H{
		"username":    user.Username,
		"custom_url":  user.CustomURL,
		"visit_count": user.VisitCount,
		"links":       annotated,
	})
}
