package models

import "time"

// ReactionRow is the shape shared by all eight reaction tables
// ({post,image,comment,reply}_{likes,unlikes}). The struct carries no table
// name on purpose: callers select the physical table with db.Table(...), so a
// single code path serves every target family. A user has at most one row per
// target per table, and never a like and an unlike at the same time; the
// unique (user_id, target_id) index is created per table during migration
// since index names cannot be shared across tables.
type ReactionRow struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null"`
	TargetID  uint `gorm:"not null"`
	CreatedAt time.Time
}
