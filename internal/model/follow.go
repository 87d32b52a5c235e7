package model

import "time"

// Follow 关注关系 (UserID 关注 AuthorID)，联合主键保证唯一
type Follow struct {
	UserID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	AuthorID  uint64 `gorm:"primaryKey;autoIncrement:false;index:idx_follows_author_id"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string {
	return "follows"
}
