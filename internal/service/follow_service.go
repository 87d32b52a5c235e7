package service

import (
	"Yatube/internal/model"
	"Yatube/internal/repository"
	"context"
)

type FollowService interface {
	Follow(ctx context.Context, followerID uint64, username string) error
	Unfollow(ctx context.Context, followerID uint64, username string) error
	IsFollowing(ctx context.Context, followerID, authorID uint64) (bool, error)
}

type followServiceImpl struct {
	userRepo   repository.UserRepo
	followRepo repository.FollowRepo
}

func NewFollowService(userRepo repository.UserRepo, followRepo repository.FollowRepo) FollowService {
	return &followServiceImpl{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Follow 重复关注与关注自己都不报错，也不产生新记录
func (s *followServiceImpl) Follow(ctx context.Context, followerID uint64, username string) error {
	author, err := s.resolve(ctx, followerID, username)
	if err != nil {
		return err
	}
	if author.ID == followerID {
		return nil
	}
	if err = s.followRepo.CreateFollow(ctx, &model.Follow{UserID: followerID, AuthorID: author.ID}); err != nil {
		return storeErr(err)
	}
	return nil
}

// Unfollow 未关注时为空操作
func (s *followServiceImpl) Unfollow(ctx context.Context, followerID uint64, username string) error {
	author, err := s.resolve(ctx, followerID, username)
	if err != nil {
		return err
	}
	if err = s.followRepo.DeleteFollow(ctx, followerID, author.ID); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *followServiceImpl) IsFollowing(ctx context.Context, followerID, authorID uint64) (bool, error) {
	if followerID == 0 || followerID == authorID {
		return false, nil
	}
	ok, err := s.followRepo.IsFollowing(ctx, followerID, authorID)
	if err != nil {
		return false, storeErr(err)
	}
	return ok, nil
}

func (s *followServiceImpl) resolve(ctx context.Context, followerID uint64, username string) (*model.User, error) {
	if followerID == 0 {
		return nil, ErrUnauthorized
	}
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err)
	}
	if author == nil {
		return nil, ErrUserNotFound
	}
	return author, nil
}
