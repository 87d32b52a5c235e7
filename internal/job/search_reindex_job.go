package job

import (
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/es"
	"Yatube/internal/pkg/logger"
	"Yatube/internal/pkg/redis"
	"Yatube/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const reindexBatchSize = 200

// SearchReindexJob 补偿同步：把近期变更的帖子重新写入索引
type SearchReindexJob struct {
	postRepo repository.PostRepo
	esRepo   es.PostRepo
	window   time.Duration
	now      func() time.Time
}

func NewSearchReindexJob(postRepo repository.PostRepo, esRepo es.PostRepo, window time.Duration) *SearchReindexJob {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &SearchReindexJob{
		postRepo: postRepo,
		esRepo:   esRepo,
		window:   window,
		now:      time.Now,
	}
}

func (s *SearchReindexJob) Run() {
	traceID := "job-reindex-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	if _, err := s.Reindex(ctx); err != nil {
		log.ErrorContext(ctx, "search reindex job failed", "err", err)
	}
}

// Reindex 从上次成功的时间点开始，没有记录时回溯 window
func (s *SearchReindexJob) Reindex(ctx context.Context) (int, error) {
	if s.esRepo == nil {
		return 0, nil
	}
	lockVal := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.SearchReindexLock, lockVal, 30*time.Minute, 1)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	defer redis.UnLock(ctx, consts.SearchReindexLock, lockVal)

	startedAt := s.now()
	since := startedAt.Add(-s.window).UTC()
	if mark, err := redis.GetValue(ctx, consts.SearchReindexMark); err == nil && mark != "" {
		if ms, err := strconv.ParseInt(mark, 10, 64); err == nil {
			since = time.UnixMilli(ms).UTC()
		}
	}

	var afterID uint64
	count := 0
	for {
		posts, err := s.postRepo.ListPostsUpdatedSince(ctx, since, afterID, reindexBatchSize)
		if err != nil {
			return count, err
		}
		for _, p := range posts {
			if err = s.esRepo.IndexPost(ctx, es.ToPostES(p)); err != nil {
				return count, err
			}
			count++
			afterID = p.ID
		}
		if len(posts) < reindexBatchSize {
			break
		}
	}

	if err = redis.SetWithExpiration(ctx, consts.SearchReindexMark, strconv.FormatInt(startedAt.UnixMilli(), 10), 0); err != nil {
		log.WarnContext(ctx, "save reindex mark failed", "err", err)
	}
	log.InfoContext(ctx, "search reindex finished", "indexed", count, "since", since)
	return count, nil
}
