package handler

import (
	"Yatube/internal/pkg/response"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followSvc service.FollowService
}

func NewFollowHandler(followSvc service.FollowService) *FollowHandler {
	return &FollowHandler{
		followSvc: followSvc,
	}
}

func (s *FollowHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := s.followSvc.Follow(c.Request.Context(), userID, c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FollowHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := s.followSvc.Unfollow(c.Request.Context(), userID, c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
