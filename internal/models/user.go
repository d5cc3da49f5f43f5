package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null;size:80;index" json:"username"`
	CustomURL    *string   `gorm:"unique;size:80" json:"custom_url,omitempty"` // Nullable vanity identifier
	Email        string    `gorm:"unique;not null;size:120" json:"email"`
	Phone        *string   `gorm:"unique;size:30" json:"phone,omitempty"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	APIKey       string    `gorm:"unique;index;size:36" json:"api_key"`
	VisitCount   int       `gorm:"column:visit_count;default:0" json:"visit_count"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Links        []Link    `gorm:"foreignKey:UserID" json:"links,omitempty"`
}
