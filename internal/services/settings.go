package services

import (
	"errors"
	"time"

	"linkbio/internal/models"
	"linkbio/pkg/utils"

	"gorm.io/gorm"
)

type SettingsService struct {
	db           *gorm.DB
	auditService *AuditService
}

func NewSettingsService(db *gorm.DB, auditService *AuditService) *SettingsService {
	return &SettingsService{db: db, auditService: auditService}
}

// Upsert stores the user's (linkTitle, linkURL) pair and refreshes the
// derived slug column in the same write, so the resolver can do an indexed
// lookup instead of scanning every user. Slugs are not unique; collisions
// between users are resolved at read time, most recently updated wins.
func (s *SettingsService) Upsert(userID uint, linkTitle, linkURL, ipAddress string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings.UserID = userID
	settings.LinkTitle = linkTitle
	settings.LinkURL = linkURL
	settings.Slug = utils.Slugify(linkTitle)
	settings.UpdatedAt = time.Now()

	if err := s.db.Save(&settings).Error; err != nil {
		return nil, err
	}

	s.auditService.LogAction(&userID, "SETTINGS_UPDATE", settings.Slug, map[string]interface{}{
		"link_title": linkTitle,
		"link_url":   linkURL,
	}, ipAddress)

	return &settings, nil
}

// BySlug returns the settings row whose derived slug matches, most recently
// updated first when several users share the slug.
func (s *SettingsService) BySlug(slug string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.
		Where("slug = ? AND slug <> '' AND link_url <> ''", slug).
		Order("updated_at desc").
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
