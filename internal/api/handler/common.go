package handler

import (
	"Yatube/internal/pkg/response"
	"Yatube/internal/service"
	log "log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径中的数字 ID，失败时已写回响应
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return id, true
}

// bindJSON 请求体解析失败统一视为参数错误
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		log.InfoContext(c.Request.Context(), "bind request body failed", "err", err)
		response.Error(c, service.ErrParamInvalid)
		return false
	}
	return true
}
