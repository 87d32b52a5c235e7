package job

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/logger"
	"Yatube/internal/pkg/redis"
	"Yatube/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// MediaCleanupJob 删除上传后长时间未被帖子引用的图片
type MediaCleanupJob struct {
	blob   service.BlobStore
	maxAge time.Duration
	now    func() time.Time
}

func NewMediaCleanupJob(blob service.BlobStore, maxAge time.Duration) *MediaCleanupJob {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &MediaCleanupJob{
		blob:   blob,
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (s *MediaCleanupJob) Run() {
	traceID := "job-media-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	if _, err := s.Cleanup(ctx); err != nil {
		log.ErrorContext(ctx, "media cleanup job failed", "err", err)
	}
}

// Cleanup 返回清理数量，多实例下只有一个实例执行
func (s *MediaCleanupJob) Cleanup(ctx context.Context) (int, error) {
	if s.blob == nil {
		return 0, nil
	}
	lockVal := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.MediaCleanupLock, lockVal, 5*time.Minute, 1)
	if err != nil {
		return 0, err
	}
	if !ok {
		log.InfoContext(ctx, "media cleanup already running elsewhere")
		return 0, nil
	}
	defer redis.UnLock(ctx, consts.MediaCleanupLock, lockVal)

	allMedia, err := redis.HGetAll(ctx, consts.MediaPendingKey)
	if err != nil {
		return 0, err
	}

	deadline := s.now().Add(-s.maxAge).Unix()
	count := 0
	for fileKey, val := range allMedia {
		var meta dto.MediaPendingMeta
		if err = json.Unmarshal([]byte(val), &meta); err != nil {
			log.WarnContext(ctx, "invalid media meta format", "fileKey", fileKey)
			_, _ = redis.HDel(ctx, consts.MediaPendingKey, fileKey)
			continue
		}
		if meta.CreatedAt > deadline {
			continue
		}

		if err = s.blob.Delete(ctx, fileKey); err != nil {
			log.ErrorContext(ctx, "failed to delete expired media", "fileKey", fileKey, "err", err)
			continue
		}
		if _, err = redis.HDel(ctx, consts.MediaPendingKey, fileKey); err != nil {
			log.ErrorContext(ctx, "failed to remove pending media entry", "fileKey", fileKey, "err", err)
		}
		count++
	}

	if count > 0 {
		log.InfoContext(ctx, "media cleanup job finished", "cleaned_count", count)
	}
	return count, nil
}
