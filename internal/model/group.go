package model

import "time"

// Group 社区分组，删除时帖子的 group_id 置空
type Group struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_post_groups_slug" json:"slug"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Group) TableName() string {
	return "post_groups"
}

func (g Group) String() string {
	return g.Title
}
