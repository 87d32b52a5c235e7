package testutil

import (
	"Yatube/internal/api/config"
	"Yatube/internal/model"
	"Yatube/internal/pkg/database"
	rdb "Yatube/internal/pkg/redis"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB 每个测试独立的内存 sqlite
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:      database.DriverSQLite,
		DSN:         fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		AutoMigrate: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestRedis 启动 miniredis 并替换全局客户端
func NewTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	prev := rdb.Rdb
	rdb.Rdb = client
	t.Cleanup(func() {
		_ = client.Close()
		rdb.Rdb = prev
	})
	return mr
}

// CreateUser 直接写库创建用户
func CreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateGroup 直接写库创建分组
func CreateGroup(t *testing.T, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePost 直接写库创建帖子，pubDate 控制排序
func CreatePost(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, text string, pubDate time.Time) *model.Post {
	t.Helper()
	p := &model.Post{Text: text, AuthorID: author.ID, PubDate: pubDate}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, db.Omit("Author", "Group", "Comments").Create(p).Error)
	return p
}

// CreateFollow 直接写库创建关注关系
func CreateFollow(t *testing.T, db *gorm.DB, user, author *model.User) {
	t.Helper()
	require.NoError(t, db.Omit("User", "Author").Create(&model.Follow{UserID: user.ID, AuthorID: author.ID}).Error)
}

// Ctx 测试用 context
func Ctx() context.Context {
	return context.Background()
}
