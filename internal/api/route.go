package api

import (
	"Yatube/internal/api/config"
	"Yatube/internal/api/middleware"
	"Yatube/internal/model"
	"Yatube/internal/pkg/logger"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, serverCfg config.ServerConfig, rateCfg config.RateLimitConfig) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(serverCfg.CORSOrigins))
	logger.SetupGin(r)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	limit := middleware.RateLimitMiddleware(rateCfg)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", limit, group.UserHandler.Register)
			userGroup.POST("/login", limit, group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		groupGroup := apiGroup.Group("/groups")
		{
			groupGroup.GET("", group.GroupHandler.ListGroups)

			adminGroup := groupGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(model.RoleAdmin))
			{
				adminGroup.POST("", group.GroupHandler.CreateGroup)
			}
		}

		feedGroup := apiGroup.Group("/feed")
		{
			feedGroup.GET("", group.FeedHandler.Index)
			feedGroup.GET("/group/:slug", group.FeedHandler.GroupPosts)
			feedGroup.GET("/following", middleware.AuthMiddleware(), group.FeedHandler.Following)
		}

		profileGroup := apiGroup.Group("/profile/:username")
		{
			profileGroup.GET("", middleware.AuthOptionalMiddleware(), group.FeedHandler.Profile)

			authGroup := profileGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware(), limit)
			{
				authGroup.POST("/follow", group.FollowHandler.Follow)
				authGroup.DELETE("/follow", group.FollowHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/search", group.PostHandler.SearchPost)
			postGroup.GET("/:post_id", group.FeedHandler.PostDetail)
			postGroup.GET("/:post_id/comments", group.CommentHandler.GetComments)

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/:post_id/revisions", group.PostHandler.Revisions)
				authGroup.POST("", limit, group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", limit, group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", limit, group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/comments", limit, group.CommentHandler.CreateComment)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware(), limit)
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}

		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(model.RoleAdmin))
			adminGroup.DELETE("/cache/feed", group.FeedHandler.FlushCache)
		}
	}

	return r
}
