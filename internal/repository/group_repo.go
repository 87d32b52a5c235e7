package repository

import (
	"Yatube/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type GroupRepo interface {
	CreateGroup(ctx context.Context, group *model.Group) error
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetGroupById(ctx context.Context, id uint64) (*model.Group, error)
	ListGroups(ctx context.Context) ([]*model.Group, error)
	DeleteGroup(ctx context.Context, id uint64) error
}

type GroupRepoImpl struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepo {
	return &GroupRepoImpl{db: db}
}

func (s *GroupRepoImpl) CreateGroup(ctx context.Context, group *model.Group) error {
	return s.db.WithContext(ctx).Create(group).Error
}

func (s *GroupRepoImpl) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	group := &model.Group{}
	result := s.db.WithContext(ctx).Where("slug = ?", slug).First(group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return group, nil
}

func (s *GroupRepoImpl) GetGroupById(ctx context.Context, id uint64) (*model.Group, error) {
	group := &model.Group{}
	result := s.db.WithContext(ctx).First(group, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return group, nil
}

func (s *GroupRepoImpl) ListGroups(ctx context.Context) ([]*model.Group, error) {
	groups := make([]*model.Group, 0)
	if err := s.db.WithContext(ctx).Order("title asc, id asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteGroup 帖子保留，group_id 置空
func (s *GroupRepoImpl) DeleteGroup(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Group{}, id).Error
	})
}
