package handler

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/pkg/response"
	"Yatube/internal/pkg/util"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) SearchPost(c *gin.Context) {
	page, err := s.postSvc.SearchPosts(c.Request.Context(), c.Query("q"), c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PostBaseDTO
	if !bindJSON(c, &req) {
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	var req dto.PostBaseDTO
	if !bindJSON(c, &req) {
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.EditPost(c.Request.Context(), postID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), postID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) Revisions(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	revs, err := s.postSvc.ListRevisions(c.Request.Context(), postID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, revs)
}
