package models

import "gorm.io/gorm"

// Post represents a wall post. Visibility and active/deleted state are
// independent axes: a soft-deleted post sits in the trash (recoverable via
// the DeletedAt timestamp) until it is hard-deleted.
type Post struct {
	gorm.Model
	UserID     uint   `gorm:"not null;index"`
	Body       string `gorm:"not null"`
	ImageKey   string `gorm:"size:512"` // optional media host object key
	Visibility int    `gorm:"not null;default:1"`
	Active     bool   `gorm:"not null;default:true"`

	User User `gorm:"foreignKey:UserID"`
}

// Image is an uploaded picture living on the media host.
type Image struct {
	gorm.Model
	UserID     uint   `gorm:"not null;index"`
	Key        string `gorm:"size:512;not null"`
	Caption    string `gorm:"size:1024"`
	Visibility int    `gorm:"not null;default:1"`

	User User `gorm:"foreignKey:UserID"`
}
