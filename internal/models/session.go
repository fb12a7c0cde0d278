package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is one logged-in device. The JWT issued at login carries TokenID;
// revoking the session invalidates every token that carries it.
type Session struct {
	gorm.Model
	UserID     uint   `gorm:"not null;index"`
	TokenID    string `gorm:"size:36;uniqueIndex;not null"`
	UserAgent  string `gorm:"size:512"`
	IP         string `gorm:"size:64"`
	LastSeenAt time.Time
	RevokedAt  *time.Time

	User User `gorm:"foreignKey:UserID"`
}
