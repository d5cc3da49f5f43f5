package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"linkbio/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ResolvedSource tags which step of the resolution chain produced a target.
type ResolvedSource string

const (
	SourceLink         ResolvedSource = "link"
	SourceProfile      ResolvedSource = "profile"
	SourceSettingsSlug ResolvedSource = "settings-slug"
)

// ResolvedTarget is the outcome of a successful resolution. Exactly one of
// Link or User is set for the "link" and "profile" sources; a settings-slug
// hit carries the owning User plus the destination in RedirectURL.
type ResolvedTarget struct {
	Source      ResolvedSource
	Link        *models.Link
	User        *models.User
	RedirectURL string
}

const linkCacheTTL = 10 * time.Minute

type ResolverService struct {
	db              *gorm.DB
	rdb             *redis.Client
	settingsService *SettingsService
}

func NewResolverService(db *gorm.DB, rdb *redis.Client, settingsService *SettingsService) *ResolverService {
	return &ResolverService{db: db, rdb: rdb, settingsService: settingsService}
}

// Resolve tries, in order: exact short-code match, custom-URL match,
// username match, settings-slug match. First hit wins; a miss on every
// step returns gorm.ErrRecordNotFound so the caller can fall through to
// page routing instead of failing the request.
func (s *ResolverService) Resolve(ctx context.Context, identifier string) (*ResolvedTarget, error) {
	link, err := s.ResolveShortCode(ctx, identifier)
	if err == nil {
		return &ResolvedTarget{Source: SourceLink, Link: link, RedirectURL: link.OriginalURL}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	err = s.db.Where("custom_url = ?", identifier).First(&user).Error
	if err == nil {
		return &ResolvedTarget{Source: SourceProfile, User: &user}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.Where("username = ?", identifier).First(&user).Error
	if err == nil {
		return &ResolvedTarget{Source: SourceProfile, User: &user}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings, err := s.settingsService.BySlug(identifier)
	if err == nil {
		if err := s.db.First(&user, settings.UserID).Error; err != nil {
			return nil, err
		}
		return &ResolvedTarget{Source: SourceSettingsSlug, User: &user, RedirectURL: settings.LinkURL}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, gorm.ErrRecordNotFound
}

// ResolveShortCode runs step 1 of the chain only, for the explicit /l/ and
// /link/ entry points. Active links are cached in redis for a short window;
// cache failures fall back to the database silently.
func (s *ResolverService) ResolveShortCode(ctx context.Context, shortCode string) (*models.Link, error) {
	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, "link:"+shortCode).Result()
		if err == nil {
			var cached models.Link
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var link models.Link
	if err := s.db.Where("short_code = ? AND is_active = ?", shortCode, true).First(&link).Error; err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(link); err == nil {
			s.rdb.Set(ctx, "link:"+shortCode, data, linkCacheTTL)
		}
	}

	return &link, nil
}

// InvalidateShortCode drops a cached link, used on deletion and deactivation.
func (s *ResolverService) InvalidateShortCode(ctx context.Context, shortCode string) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "link:"+shortCode)
	}
}
