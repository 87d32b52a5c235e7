package service

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/redis"
	"Yatube/internal/pkg/util"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// BlobStore 图片对象存储
type BlobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// MediaRegistry 记录已上传、尚未被帖子引用的图片
type MediaRegistry interface {
	Register(ctx context.Context, key string, meta *dto.MediaPendingMeta) error
	Verify(ctx context.Context, key string, ownerID uint64) error
	Release(ctx context.Context, keys ...string) error
}

// RedisMediaRegistry 使用 media:pending 哈希，field 为对象键
type RedisMediaRegistry struct{}

func NewRedisMediaRegistry() *RedisMediaRegistry {
	return &RedisMediaRegistry{}
}

func (s *RedisMediaRegistry) Register(ctx context.Context, key string, meta *dto.MediaPendingMeta) error {
	b, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return redis.HSet(ctx, consts.MediaPendingKey, key, string(b))
}

// Verify 图片必须存在且属于该用户
func (s *RedisMediaRegistry) Verify(ctx context.Context, key string, ownerID uint64) error {
	val, ok, err := redis.HGet(ctx, consts.MediaPendingKey, key)
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return ErrMediaNotFound
	}
	var meta dto.MediaPendingMeta
	if err = json.Unmarshal([]byte(val), &meta); err != nil || meta.OwnerID != ownerID {
		return ErrMediaNotFound
	}
	return nil
}

func (s *RedisMediaRegistry) Release(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := redis.HDel(ctx, consts.MediaPendingKey, keys...)
	return err
}

type MediaService interface {
	Upload(ctx context.Context, ownerID uint64, r io.Reader, size int64) (*dto.MediaUploadDTO, error)
}

type mediaServiceImpl struct {
	blob     BlobStore
	registry MediaRegistry
	now      func() time.Time
}

// NewMediaService blob 为 nil 表示未启用对象存储
func NewMediaService(blob BlobStore, registry MediaRegistry) MediaService {
	return &mediaServiceImpl{
		blob:     blob,
		registry: registry,
		now:      time.Now,
	}
}

// Upload 只接受图片，缩放后统一存为 JPEG
func (s *mediaServiceImpl) Upload(ctx context.Context, ownerID uint64, r io.Reader, size int64) (*dto.MediaUploadDTO, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}
	if s.blob == nil {
		return nil, ErrMediaUnavailable
	}
	if size > consts.MaxImageSize {
		return nil, ErrFileNotSupported
	}

	data, err := io.ReadAll(io.LimitReader(r, consts.MaxImageSize+1))
	if err != nil {
		return nil, ErrParamInvalid
	}
	if len(data) > consts.MaxImageSize || !util.IsImage(util.DetectContentType(data)) {
		return nil, ErrFileNotSupported
	}

	thumb, width, height, err := util.MakeThumbnail(data)
	if err != nil {
		log.WarnContext(ctx, "image decode failed", "err", err)
		return nil, ErrFileNotSupported
	}

	now := s.now()
	key := "posts/" + now.Format("2006/01/02/") + uuid.NewString() + ".jpg"
	if err = s.blob.Upload(ctx, key, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg"); err != nil {
		return nil, storeErr(err)
	}

	meta := &dto.MediaPendingMeta{
		OwnerID:   ownerID,
		MimeType:  "image/jpeg",
		Width:     width,
		Height:    height,
		Size:      int64(len(thumb)),
		CreatedAt: now.Unix(),
	}
	if err = s.registry.Register(ctx, key, meta); err != nil {
		_ = s.blob.Delete(context.WithoutCancel(ctx), key)
		return nil, storeErr(err)
	}

	log.InfoContext(ctx, "media upload success", "key", key, "width", width, "height", height)
	return &dto.MediaUploadDTO{
		Key:    key,
		URL:    s.blob.PublicURL(key),
		Width:  width,
		Height: height,
		Size:   meta.Size,
	}, nil
}
