package repository

import (
	"Yatube/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepo interface {
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, userID, authorID uint64) error
	IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error)
	FollowedAuthorsOf(ctx context.Context, userID uint64) ([]uint64, error)
	GetFollowerCount(ctx context.Context, authorID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

// CreateFollow 已存在时不做任何事
func (s *FollowRepoImpl) CreateFollow(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(follow).Error
}

// DeleteFollow 不存在时不报错
func (s *FollowRepoImpl) DeleteFollow(ctx context.Context, userID, authorID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{}).Error
}

func (s *FollowRepoImpl) IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// followedAuthors 用户关注的作者 ID 查询，关注流子查询共用
func followedAuthors(db *gorm.DB, userID uint64) *gorm.DB {
	return db.Model(&model.Follow{}).
		Select("author_id").
		Where("user_id = ?", userID)
}

// FollowedAuthorsOf 获取用户关注的作者 ID
func (s *FollowRepoImpl) FollowedAuthorsOf(ctx context.Context, userID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := followedAuthors(s.db.WithContext(ctx), userID).
		Order("author_id asc").
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetFollowerCount 获取作者的粉丝数量
func (s *FollowRepoImpl) GetFollowerCount(ctx context.Context, authorID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// GetFollowingCount 获取用户的关注数量
func (s *FollowRepoImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
