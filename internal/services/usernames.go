package services

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"linkbio/internal/models"

	"gorm.io/gorm"
)

var ErrInvalidName = errors.New("name contains no usable characters")

// Permitted username characters: latin letters, Hangul, digits, underscore, hyphen.
var usernameStrip = regexp.MustCompile(`[^a-zA-Z0-9_\-가-힣]`)

type UsernameService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewUsernameService(db *gorm.DB, logger *slog.Logger) *UsernameService {
	return &UsernameService{db: db, logger: logger}
}

// Allocate returns a username that is unique at the moment of allocation,
// derived from baseName. A taken base is probed with numeric suffixes 1..999
// in order; if all are taken the last six digits of the current unix time
// are appended instead. Concurrent allocations of the same base can still
// collide; the unique constraint on users.username catches the loser.
func (s *UsernameService) Allocate(baseName string) (string, error) {
	base := usernameStrip.ReplaceAllString(strings.TrimSpace(baseName), "")
	if base == "" {
		return "", ErrInvalidName
	}

	taken, err := s.isTaken(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 1; i <= 999; i++ {
		candidate := base + strconv.Itoa(i)
		taken, err := s.isTaken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	s.logger.Warn("Username probe space exhausted, using timestamp suffix", "base", base)
	return base + "_" + ts, nil
}

func (s *UsernameService) isTaken(username string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("username availability check: %w", err)
	}
	return count > 0, nil
}

// ResolveFuzzy finds a user whose username is inputUsername plus an
// underscore-digits suffix. Legacy auto-generated accounts got such a
// suffix appended after the fact, so hand-typed links without it should
// still resolve. The highest id (most recent account) wins a tie.
func (s *UsernameService) ResolveFuzzy(inputUsername string) (*models.User, error) {
	var candidates []models.User
	pattern := inputUsername + `\_%`
	err := s.db.
		Where("username LIKE ? ESCAPE '\\'", pattern).
		Order("id desc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	suffix := regexp.MustCompile(`^` + regexp.QuoteMeta(inputUsername) + `_[0-9]+$`)
	for i := range candidates {
		if suffix.MatchString(candidates[i].Username) {
			return &candidates[i], nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}
