package models

import (
	"time"
)

// UserSettings carries the secondary resolution source: a per-user
// (linkTitle, linkURL) pair. Slug is derived from LinkTitle on every write
// and indexed so resolution never scans the table. Slugs are not unique;
// collisions resolve to the most recently updated row.
type UserSettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"unique;not null" json:"user_id"`
	LinkTitle string    `gorm:"size:255" json:"link_title"`
	LinkURL   string    `gorm:"type:text" json:"link_url"`
	Slug      string    `gorm:"size:255;index" json:"slug"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
