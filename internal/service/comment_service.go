package service

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/model"
	"Yatube/internal/repository"
	"context"
	"strings"
	"time"
)

type CommentService interface {
	AddComment(ctx context.Context, postID, authorID uint64, in *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	ListComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error)
}

type commentServiceImpl struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	userRepo    repository.UserRepo
	now         func() time.Time
}

func NewCommentService(postRepo repository.PostRepo, commentRepo repository.CommentRepo, userRepo repository.UserRepo) CommentService {
	return &commentServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// AddComment 评论不影响信息流缓存
func (s *commentServiceImpl) AddComment(ctx context.Context, postID, authorID uint64, in *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	if authorID == 0 {
		return nil, ErrUnauthorized
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrCommentTextEmpty
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
		Created:  s.now(),
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, storeErr(err)
	}

	author, err := s.userRepo.GetUserById(ctx, authorID)
	if err != nil {
		return nil, storeErr(err)
	}
	if author != nil {
		comment.Author = *author
	}
	return toCommentDTO(comment), nil
}

func (s *commentServiceImpl) ListComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentDTO(c))
	}
	return out, nil
}
