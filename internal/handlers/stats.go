package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserLinkStats returns the user-level aggregate summed over all the
// user's links.
func (h *Handler) UserLinkStats(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	stats, err := h.statsService.StatsForUser(uint(userID))
	if err != nil {
		h.logger.Error("Failed to aggregate user stats", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
