package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"linkbio/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateLinkRequest struct {
	Title       string `json:"title" binding:"required"`
	OriginalURL string `json:"original_url" binding:"required,url"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Style       string `json:"style,omitempty"`
}

// CreateLink handles the API request to create a short-code-backed link
func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	link, err := h.linkService.Create(services.CreateLinkDTO{
		UserID:      userID,
		Title:       req.Title,
		OriginalURL: req.OriginalURL,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Style:       req.Style,
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, services.ErrShortCodeConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "short_code collision, retry", "field": "short_code"})
			return
		}
		h.logger.Error("Failed to create link", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"link":      link,
		"short_url": h.cfg.BaseURL + "/l/" + link.ShortCode,
	})
}

// ListLinks returns every link for a user, annotated with visit stats
func (h *Handler) ListLinks(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	links, err := h.linkService.ByUser(uint(userID))
	if err != nil {
		h.logger.Error("Failed to list links", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	annotated := make([]profileLink, 0, len(links))
	for _, link := range links {
		stats, err := h.statsService.StatsForLink(link.ID)
		if err != nil {
			h.logger.Error("Failed to load link stats", "link_id", link.ID, "error", err)
			stats = &services.VisitStats{}
		}
		annotated = append(annotated, profileLink{Link: link, Stats: stats})
	}

	c.JSON(http.StatusOK, gin.H{"links": annotated})
}

// DeleteLink removes one of the caller's own links
func (h *Handler) DeleteLink(c *gin.Context) {
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link id"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.linkService.Delete(c.Request.Context(), uint(linkID), userID, c.ClientIP()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		h.logger.Error("Failed to delete link", "link_id", linkID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link deleted"})
}

// ShortCodeQR renders a QR code PNG for an existing short link
func (h *Handler) ShortCodeQR(c *gin.Context) {
	shortCode := c.Param("short_code")

	if _, err := h.resolverService.ResolveShortCode(c.Request.Context(), shortCode); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))
	png, err := h.qrService.PNGForShortCode(shortCode, size)
	if err != nil {
		h.logger.Error("Failed to render QR code", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
