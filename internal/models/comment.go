package models

import "gorm.io/gorm"

// Comment belongs to a post.
type Comment struct {
	gorm.Model
	PostID uint   `gorm:"not null;index"`
	UserID uint   `gorm:"not null;index"`
	Body   string `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}

// Reply belongs to a comment.
type Reply struct {
	gorm.Model
	CommentID uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Body      string `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}
