package services

import (
	"log/slog"
	"os"

	"linkbio/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	err = db.AutoMigrate(&models.User{}, &models.Link{}, &models.LinkVisit{}, &models.UserSettings{}, &models.AuditLog{})
	if err != nil {
		panic("failed to migrate database: " + err.Error())
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
