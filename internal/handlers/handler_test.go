package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"linkbio/internal/config"
	"linkbio/internal/models"
	"linkbio/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.User{}, &models.Link{}, &models.LinkVisit{}, &models.UserSettings{}, &models.AuditLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		BaseURL:       "http://test.local",
		SessionSecret: "test-secret-12345678901234567890123456789012",
	}

	audit := services.NewAuditService(db, logger)
	usernames := services.NewUsernameService(db, logger)
	settings := services.NewSettingsService(db, audit)
	resolver := services.NewResolverService(db, nil, settings)
	links := services.NewLinkService(db, audit, resolver)
	visits := services.NewVisitService(db, logger, nil)
	stats := services.NewStatsService(db)
	qr := services.NewQRService(cfg.BaseURL)

	h := NewHandler(cfg, logger, db, nil, usernames, resolver, links, visits, stats, settings, audit, qr)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func seedUser(db *gorm.DB, username string) models.User {
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		APIKey:       "key-" + username,
	}
	db.Create(&user)
	return user
}
