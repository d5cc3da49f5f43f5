package services

import (
	"time"

	"linkbio/internal/models"

	"gorm.io/gorm"
)

// VisitStats is the five-number summary served to dashboards and profile
// views. Daily and monthly windows start at server-local midnight and the
// first of the current month; the timezone is a fixed deployment assumption.
type VisitStats struct {
	TotalVisits    int64 `json:"total_visits"`
	DailyVisits    int64 `json:"daily_visits"`
	MonthlyVisits  int64 `json:"monthly_visits"`
	OwnerVisits    int64 `json:"owner_visits"`
	ExternalVisits int64 `json:"external_visits"`
}

type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, now: time.Now}
}

// StatsForLink computes all five numbers in a single conditional-count
// aggregate so they describe one consistent snapshot of link_visits.
func (s *StatsService) StatsForLink(linkID uint) (*VisitStats, error) {
	return s.aggregate([]uint{linkID})
}

// StatsForUser sums the same aggregate across every link the user owns.
// A user with no links short-circuits to zeros without touching link_visits.
func (s *StatsService) StatsForUser(userID uint) (*VisitStats, error) {
	var linkIDs []uint
	err := s.db.Model(&models.Link{}).Where("user_id = ?", userID).Pluck("id", &linkIDs).Error
	if err != nil {
		return nil, err
	}
	if len(linkIDs) == 0 {
		return &VisitStats{}, nil
	}
	return s.aggregate(linkIDs)
}

func (s *StatsService) aggregate(linkIDs []uint) (*VisitStats, error) {
	now := s.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var stats VisitStats
	err := s.db.Model(&models.LinkVisit{}).
		Select(`
			COUNT(*) AS total_visits,
			COUNT(CASE WHEN visited_at >= ? THEN 1 END) AS daily_visits,
			COUNT(CASE WHEN visited_at >= ? THEN 1 END) AS monthly_visits,
			COUNT(CASE WHEN is_owner THEN 1 END) AS owner_visits,
			COUNT(CASE WHEN NOT is_owner THEN 1 END) AS external_visits`,
			todayStart, monthStart).
		Where("link_id IN ?", linkIDs).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
