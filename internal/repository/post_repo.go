package repository

import (
	"Yatube/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostQuery 信息流过滤条件，零值表示不过滤
type PostQuery struct {
	AuthorID *uint64
	GroupID  *uint64
	// FollowerID 只看该用户关注的作者
	FollowerID *uint64
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostsByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
	CountPosts(ctx context.Context, q PostQuery) (int64, error)
	ListPosts(ctx context.Context, q PostQuery, offset, limit int) ([]*model.Post, error)
	ListPostsUpdatedSince(ctx context.Context, since time.Time, afterID uint64, limit int) ([]*model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// GetPost 预加载作者与分组
func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return post, nil
}

// GetPostsByIds 保持入参顺序，缺失的 ID 被跳过
func (s *PostRepoImpl) GetPostsByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	var posts []*model.Post
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id IN ?", ids).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint64]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// UpdatePost pub_date 与 author_id 不可修改
func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).
		Model(post).
		Select("text", "group_id", "image", "updated_at").
		Updates(post).Error
}

// DeletePost 先删评论再删帖子
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

func (s *PostRepoImpl) CountPosts(ctx context.Context, q PostQuery) (int64, error) {
	var count int64
	err := s.scoped(s.db.WithContext(ctx).Model(&model.Post{}), q).Count(&count).Error
	return count, err
}

// ListPosts 按发布时间倒序，同一时刻按 ID 倒序
func (s *PostRepoImpl) ListPosts(ctx context.Context, q PostQuery, offset, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.scoped(s.db.WithContext(ctx), q).
		Preload("Author").
		Preload("Group").
		Order("pub_date desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsUpdatedSince 以 ID 游标遍历近期变更的帖子
func (s *PostRepoImpl) ListPostsUpdatedSince(ctx context.Context, since time.Time, afterID uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("updated_at >= ? AND id > ?", since, afterID).
		Order("id asc").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) scoped(db *gorm.DB, q PostQuery) *gorm.DB {
	if q.AuthorID != nil {
		db = db.Where("posts.author_id = ?", *q.AuthorID)
	}
	if q.GroupID != nil {
		db = db.Where("posts.group_id = ?", *q.GroupID)
	}
	if q.FollowerID != nil {
		db = db.Where("posts.author_id IN (?)", followedAuthors(s.db, *q.FollowerID))
	}
	return db
}
