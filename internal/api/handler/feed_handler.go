package handler

import (
	"Yatube/internal/pkg/response"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

// Index 全站信息流
func (s *FeedHandler) Index(c *gin.Context) {
	page, err := s.feedSvc.ListPosts(c.Request.Context(), service.GlobalScope(), c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *FeedHandler) GroupPosts(c *gin.Context) {
	res, err := s.feedSvc.GetGroupFeed(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *FeedHandler) Following(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, err := s.feedSvc.ListPosts(c.Request.Context(), service.FollowingScope(userID), c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *FeedHandler) Profile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	profile, err := s.feedSvc.GetProfile(c.Request.Context(), c.Param("username"), userID, c.Query("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *FeedHandler) PostDetail(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	detail, err := s.feedSvc.GetPostDetail(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// FlushCache 管理员手动清空信息流缓存
func (s *FeedHandler) FlushCache(c *gin.Context) {
	if err := s.feedSvc.FlushCache(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
