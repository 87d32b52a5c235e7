package service

import (
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/redis"
	"context"
	"strings"
	"sync"
	"time"
)

// FeedCache 信息流响应缓存，过期由存储负责，Flush 清空全部键
type FeedCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Flush(ctx context.Context) error
}

// GlobalFeedKey 全站信息流的缓存键
func GlobalFeedKey(page int) string {
	return consts.FeedGlobalKey + "page=" + itoa(page)
}

// RedisFeedCache 基于 Redis 的实现，所有键共享 feed:global: 前缀
type RedisFeedCache struct{}

func NewRedisFeedCache() *RedisFeedCache {
	return &RedisFeedCache{}
}

func (s *RedisFeedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := redis.GetValue(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if val == "" {
		return nil, false, nil
	}
	return []byte(val), true, nil
}

// Put ttl 非正数时不写入
func (s *RedisFeedCache) Put(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, key, body, ttl)
}

// Flush 只删除信息流前缀下的键
func (s *RedisFeedCache) Flush(ctx context.Context) error {
	_, err := redis.DeleteByPrefix(ctx, consts.FeedGlobalKey)
	return err
}

type memoryEntry struct {
	body     []byte
	expireAt time.Time
}

// MemoryFeedCache 进程内实现
type MemoryFeedCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryFeedCache() *MemoryFeedCache {
	return &MemoryFeedCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryFeedCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(e.expireAt) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && !s.now().Before(cur.expireAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.body, true, nil
}

func (s *MemoryFeedCache) Put(_ context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cp := make([]byte, len(body))
	copy(cp, body)

	s.mu.Lock()
	s.entries[key] = memoryEntry{body: cp, expireAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryFeedCache) Flush(_ context.Context) error {
	s.mu.Lock()
	for k := range s.entries {
		if strings.HasPrefix(k, consts.FeedGlobalKey) {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
	return nil
}
