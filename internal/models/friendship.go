package models

import "time"

// Friendship is one directional edge of a symmetric relationship: one user's
// stance toward another, encoded as two binary flags. A pair of users always
// has either zero or two rows (A→B and B→A); the two rows are only ever
// written together in a single transaction.
type Friendship struct {
	FromUserID uint `gorm:"primaryKey"`
	ToUserID   uint `gorm:"primaryKey"`
	Request    int  `gorm:"not null;default:0"`
	Response   int  `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
