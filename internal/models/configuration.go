package models

import "gorm.io/gorm"

// Configuration holds a user's visibility toggles, one enumerated level per
// surface. Created with defaults at registration, upserted on edit.
type Configuration struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex"`

	ProfileImage  int `gorm:"not null;default:1"`
	Wall          int `gorm:"not null;default:1"`
	Posts         int `gorm:"not null;default:1"`
	Media         int `gorm:"not null;default:1"`
	FriendsList   int `gorm:"not null;default:2"`
	FollowersList int `gorm:"not null;default:2"`
	FollowingList int `gorm:"not null;default:2"`
	Curriculum    int `gorm:"not null;default:2"`
	Email         int `gorm:"not null;default:4"`
	Bio           int `gorm:"not null;default:1"`
	Comments      int `gorm:"not null;default:2"`
	Reactions     int `gorm:"not null;default:2"`
	Search        int `gorm:"not null;default:1"`
	OnlineStatus  int `gorm:"not null;default:3"`
	Tagging       int `gorm:"not null;default:3"`
}
