package models

import "time"

// Follow is a simple directional edge: presence of the row means the follower
// follows the target. Created and destroyed by toggle.
type Follow struct {
	ID          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"index;uniqueIndex:idx_follower_following;not null"`
	FollowingID uint `gorm:"index;uniqueIndex:idx_follower_following;not null"`
	CreatedAt   time.Time

	Follower  User `gorm:"foreignKey:FollowerID"`
	Following User `gorm:"foreignKey:FollowingID"`
}
