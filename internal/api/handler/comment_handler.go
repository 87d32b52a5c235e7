package handler

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/pkg/response"
	"Yatube/internal/pkg/util"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	comments, err := s.commentSvc.ListComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if !bindJSON(c, &req) {
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.AddComment(c.Request.Context(), postID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}
