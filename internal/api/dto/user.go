package dto

import "time"

// UserDTO 对外展示的用户信息
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"required,min=3,max=150,excludesall= /"`
	Password string `json:"password" binding:"required" validate:"required,min=6,max=64"`
}

// CredentialDTO 登录凭据
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenDTO 登录结果
type TokenDTO struct {
	Token string `json:"token"`
}
