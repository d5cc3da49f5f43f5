package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkbio/internal/models"
	"linkbio/pkg/utils"

	"gorm.io/gorm"
)

var ErrShortCodeConflict = errors.New("short code already taken")

const shortCodeLength = 7

type CreateLinkDTO struct {
	UserID      uint
	Title       string
	OriginalURL string
	Description string
	ImageURL    string
	Style       string
	IPAddress   string // For audit log
}

type LinkService struct {
	db            *gorm.DB
	auditService  *AuditService
	resolver      *ResolverService
	codeGenerator func(int) string
}

func NewLinkService(db *gorm.DB, auditService *AuditService, resolver *ResolverService) *LinkService {
	return &LinkService{
		db:            db,
		auditService:  auditService,
		resolver:      resolver,
		codeGenerator: utils.GenerateShortCode,
	}
}

// Create issues a fresh short code and persists the link. The generator is
// not collision-free by construction; the unique constraint on short_code
// rejects the rare duplicate and the caller sees ErrShortCodeConflict.
func (s *LinkService) Create(dto CreateLinkDTO) (*models.Link, error) {
	link := models.Link{
		UserID:      dto.UserID,
		ShortCode:   s.codeGenerator(shortCodeLength),
		OriginalURL: dto.OriginalURL,
		Title:       dto.Title,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		Style:       dto.Style,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if err := s.db.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrShortCodeConflict
		}
		return nil, fmt.Errorf("create link: %w", err)
	}

	s.auditService.LogAction(&dto.UserID, "CREATE_LINK", link.ShortCode, map[string]interface{}{
		"original_url": dto.OriginalURL,
	}, dto.IPAddress)

	return &link, nil
}

// Delete removes a link owned by userID. Existing link_visits rows are left
// in place and become orphaned; historical aggregates are not rewritten.
func (s *LinkService) Delete(ctx context.Context, linkID, userID uint, ipAddress string) error {
	var link models.Link
	if err := s.db.Where("id = ? AND user_id = ?", linkID, userID).First(&link).Error; err != nil {
		return err
	}

	if err := s.db.Delete(&link).Error; err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	s.resolver.InvalidateShortCode(ctx, link.ShortCode)

	s.auditService.LogAction(&userID, "DELETE_LINK", link.ShortCode, nil, ipAddress)
	return nil
}

// ByUser returns every link a user owns, newest first.
func (s *LinkService) ByUser(userID uint) ([]models.Link, error) {
	var links []models.Link
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&links).Error
	return links, err
}
