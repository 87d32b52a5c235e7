package middleware

import (
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/redis"
	"Yatube/internal/pkg/response"
	"Yatube/internal/pkg/security"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errTokenMissing = errors.New("Token 缺失或格式错误")
	errTokenInvalid = errors.New("Token 无效或已过期")
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, code, err := parseToken(c)
		if err != nil {
			response.Fail(c, code, err.Error())
			c.Abort()
			return
		}
		injectUser(c, claims)
		c.Next()
	}
}

// parseToken 校验格式、黑名单与签名
func parseToken(c *gin.Context) (*security.UserClaims, int, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, response.Unauthorized, errTokenMissing
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return nil, response.Unauthorized, errTokenMissing
	}

	revoked, err := redis.Exists(c.Request.Context(), consts.TokenBlacklistKey+signature)
	if err != nil {
		return nil, response.InternalServerError, errors.New("未知错误")
	}
	if revoked {
		return nil, response.Unauthorized, errTokenInvalid
	}

	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		return nil, response.Unauthorized, errTokenInvalid
	}
	c.Set("token", tokenString)
	return claims, 0, nil
}

func injectUser(c *gin.Context, claims *security.UserClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("roles", claims.Roles)

	newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}
