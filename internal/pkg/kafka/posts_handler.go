package kafka

import (
	"Yatube/internal/model"
	"Yatube/internal/pkg/es"
	"context"
	log "log/slog"
	"sync/atomic"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const postsTable = "posts"

// PostLoader 读取带作者信息的帖子
type PostLoader interface {
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
}

// FeedFlusher 清空信息流缓存
type FeedFlusher interface {
	FlushCache(ctx context.Context) error
}

type PostsHandler struct {
	postDBRepo PostLoader
	postESRepo es.PostRepo
	flusher    FeedFlusher
	changed    atomic.Int64
}

// NewPostsHandler flusher 为 nil 时不刷新缓存
func NewPostsHandler(postDBRepo PostLoader, postESRepo es.PostRepo, flusher FeedFlusher) *PostsHandler {
	return &PostsHandler{
		postDBRepo: postDBRepo,
		postESRepo: postESRepo,
		flusher:    flusher,
	}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim", "partition", claim.Partition())
	if err := pullMessageBatch(session, claim, s.logic, s.afterBatch); err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	log.Info("topic-post consume claim end", "partition", claim.Partition())
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, postsTable)
	if err != nil {
		return err
	}

	for _, row := range canalMsg.Data {
		id := StrToUint64(row["id"])
		if id == 0 {
			continue
		}

		switch canalMsg.Type {
		case INSERT, UPDATE:
			err = s.syncPost(ctx, id)
		case DELETE:
			err = s.postESRepo.DeletePost(ctx, id)
		default:
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "sync post %d", id)
		}
		s.changed.Add(1)
	}
	return nil
}

// syncPost 以数据库当前状态为准，已被删除的帖子从索引移除
func (s *PostsHandler) syncPost(ctx context.Context, id uint64) error {
	post, err := s.postDBRepo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return s.postESRepo.DeletePost(ctx, id)
	}
	return s.postESRepo.IndexPost(ctx, es.ToPostES(post))
}

func (s *PostsHandler) afterBatch(ctx context.Context, _ int) {
	if s.changed.Swap(0) == 0 || s.flusher == nil {
		return
	}
	if err := s.flusher.FlushCache(ctx); err != nil {
		log.WarnContext(ctx, "flush feed cache after binlog failed", "err", err)
	}
}
