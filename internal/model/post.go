package model

import (
	"time"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	Text      string    `gorm:"type:text;not null"`
	PubDate   time.Time `gorm:"not null;index:idx_posts_pub_date"`
	AuthorID  uint64    `gorm:"not null;index:idx_posts_author_id"`
	GroupID   *uint64   `gorm:"index:idx_posts_group_id"`
	Image     *string   `gorm:"type:varchar(512)"`
	UpdatedAt time.Time

	// 关联关系
	Author   User      `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Group    *Group    `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:SET NULL"`
	Comments []Comment `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

// String 帖子摘要，取正文前 15 个字符
func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > 15 {
		return string(runes[:15])
	}
	return p.Text
}
