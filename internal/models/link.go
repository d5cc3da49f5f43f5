package models

import (
	"time"
)

type Link struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ShortCode   string     `gorm:"unique;not null;size:20;index" json:"short_code"`
	OriginalURL string     `gorm:"not null;type:text" json:"original_url"`
	Title       string     `gorm:"size:255" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string     `gorm:"type:text" json:"image_url,omitempty"`
	Style       string     `gorm:"size:50" json:"style,omitempty"` // Presentation hint, opaque to the core
	ClicksCount int        `gorm:"column:clicks;default:0" json:"clicks_count"`
	IsActive    bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Visits      []LinkVisit `gorm:"foreignKey:LinkID" json:"visits,omitempty"`
}

// TableName overrides the default pluralization
func (Link) TableName() string {
	return "links"
}
