package model

import (
	"time"
)

type Comment struct {
	ID       uint64    `gorm:"primaryKey"`
	PostID   uint64    `gorm:"not null;index:idx_comments_post_id"`
	AuthorID uint64    `gorm:"not null;index:idx_comments_author_id"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"not null"`

	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string {
	return "comments"
}
