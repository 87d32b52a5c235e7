package model

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"type:varchar(150);not null;uniqueIndex:idx_users_username"`
	Password  string `gorm:"type:varchar(255);not null"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// Roles 签发 Token 时使用的角色列表
func (u *User) Roles() []string {
	if u.IsAdmin {
		return []string{RoleUser, RoleAdmin}
	}
	return []string{RoleUser}
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
