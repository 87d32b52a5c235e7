package middleware

import (
	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败或缺失则 UID 为 0
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, err := parseToken(c)
		if err != nil {
			c.Set("user_id", uint64(0))
		} else {
			injectUser(c, claims)
		}
		c.Next()
	}
}
