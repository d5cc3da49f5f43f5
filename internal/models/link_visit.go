package models

import (
	"time"
)

type LinkVisit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LinkID     uint      `gorm:"not null;index" json:"link_id"`
	VisitorIP  string    `gorm:"size:45" json:"visitor_ip,omitempty"`
	UserAgent  string    `gorm:"size:255" json:"user_agent"` // Raw UA string
	Referrer   string    `gorm:"size:255;default:'Direct'" json:"referrer"`
	IsOwner    bool      `gorm:"default:false;index" json:"is_owner"`
	Country    string    `gorm:"size:100;default:'Unknown'" json:"country"`
	Browser    string    `gorm:"size:50" json:"browser"`
	OS         string    `gorm:"size:100" json:"os"`
	DeviceType string    `gorm:"size:50" json:"device_type"`
	VisitedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"visited_at"`
}

func (LinkVisit) TableName() string {
	return "link_visits"
}
