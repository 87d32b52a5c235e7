package handler

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/pkg/response"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupSvc service.GroupService
}

func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{
		groupSvc: groupSvc,
	}
}

func (s *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := s.groupSvc.ListGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, groups)
}

func (s *GroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupDTO
	if !bindJSON(c, &req) {
		return
	}
	group, err := s.groupSvc.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, group)
}
