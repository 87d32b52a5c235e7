package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret         = []byte("yatube")
	jwtIssuer         = "Yatube"
	jwtExpirationTime = 24 * time.Hour
)

// Configure 设置签名密钥、签发方与有效期
func Configure(secret, issuer string, ttl time.Duration) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
	if ttl > 0 {
		jwtExpirationTime = ttl
	}
}

// UserClaims Token 中携带的业务信息
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
