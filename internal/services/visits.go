package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"linkbio/internal/models"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

// VisitService records link accesses. Recording is fire-and-forget relative
// to the redirect response: the dispatcher pushes onto a buffered channel
// and the worker persists in the background. The visit row is the source of
// truth for analytics; the clicks and visit_count counters are best-effort
// caches bumped with atomic SQL increments, deliberately not in the same
// transaction as the row insert.
type VisitService struct {
	db           *gorm.DB
	logger       *slog.Logger
	visitChannel chan models.LinkVisit
	geoIPService *GeoIPService
}

func NewVisitService(db *gorm.DB, logger *slog.Logger, geoIPService *GeoIPService) *VisitService {
	return &VisitService{
		db:           db,
		logger:       logger,
		visitChannel: make(chan models.LinkVisit, 1000),
		geoIPService: geoIPService,
	}
}

func (s *VisitService) Start(ctx context.Context) {
	s.logger.Info("Visit worker starting")
	for {
		select {
		case visit := <-s.visitChannel:
			if err := s.Record(visit); err != nil {
				s.logger.Error("Failed to record visit", "link_id", visit.LinkID, "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Visit worker stopping")
			return
		}
	}
}

// RecordAsync enqueues a visit without blocking the caller. A full channel
// drops the event; the counter approximation degrades but redirect latency
// does not.
func (s *VisitService) RecordAsync(visit models.LinkVisit) {
	select {
	case s.visitChannel <- visit:
	default:
		s.logger.Warn("Visit channel full, dropping visit event", "link_id", visit.LinkID)
	}
}

// Record enriches and persists one visit, then bumps the denormalized
// counters on the link and its owner.
func (s *VisitService) Record(visit models.LinkVisit) error {
	s.enrich(&visit)

	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now()
	}

	if err := s.db.Create(&visit).Error; err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}

	// Counter increments are atomic per spec of the SQL expression but are
	// not transactional with the insert above; partial success is tolerated.
	var link models.Link
	if err := s.db.First(&link, visit.LinkID).Error; err != nil {
		return fmt.Errorf("load link for counters: %w", err)
	}

	if err := s.db.Model(&models.Link{}).Where("id = ?", visit.LinkID).
		UpdateColumn("clicks", gorm.Expr("clicks + 1")).Error; err != nil {
		s.logger.Error("Failed to increment link clicks", "link_id", visit.LinkID, "error", err)
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", link.UserID).
		UpdateColumn("visit_count", gorm.Expr("visit_count + 1")).Error; err != nil {
		s.logger.Error("Failed to increment user visit count", "user_id", link.UserID, "error", err)
	}

	return nil
}

// RecordProfileView bumps the owner's visit counter for a profile hit.
// Profile views have no backing link, so no visit row is written.
func (s *VisitService) RecordProfileView(userID uint) {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("visit_count", gorm.Expr("visit_count + 1")).Error; err != nil {
		s.logger.Error("Failed to increment profile visit count", "user_id", userID, "error", err)
	}
}

func (s *VisitService) enrich(visit *models.LinkVisit) {
	ua := user_agent.New(visit.UserAgent)
	browserName, browserVer := ua.Browser()
	visit.Browser = browserName + " " + browserVer
	visit.OS = ua.OS()

	switch {
	case ua.Bot():
		visit.DeviceType = "Bot"
	case ua.Mobile():
		visit.DeviceType = "Mobile"
	default:
		visit.DeviceType = "Desktop"
	}

	if visit.Referrer == "" {
		visit.Referrer = "Direct"
	}

	if s.geoIPService != nil {
		visit.Country = s.geoIPService.CountryFor(visit.VisitorIP)
	}

	visit.VisitorIP = maskIP(visit.VisitorIP)
}

// maskIP zeroes the host part of an address before storage.
func maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}
