package job

import (
	"context"
	"io"
	"strconv"
	"sync"
	"testing"
	"time"

	"Yatube/internal/api/dto"
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/es"
	"Yatube/internal/repository"
	"Yatube/internal/testutil"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlob struct {
	mu      sync.Mutex
	deleted []string
}

func (m *memBlob) Upload(context.Context, string, io.Reader, int64, string) error { return nil }
func (m *memBlob) PublicURL(key string) string                                    { return key }
func (m *memBlob) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	return nil
}

type memIndex struct {
	mu   sync.Mutex
	docs map[uint64]*es.PostES
}

func (m *memIndex) IndexPost(_ context.Context, post *es.PostES) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[post.ID] = post
	return nil
}

func (m *memIndex) DeletePost(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *memIndex) SearchPosts(context.Context, string, int, int) ([]uint64, int64, error) {
	return nil, 0, nil
}

func TestMediaCleanupJob(t *testing.T) {
	mr := testutil.NewTestRedis(t)
	ctx := testutil.Ctx()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	put := func(key string, createdAt time.Time) {
		b, err := json.Marshal(&dto.MediaPendingMeta{OwnerID: 1, CreatedAt: createdAt.Unix()})
		require.NoError(t, err)
		mr.HSet(consts.MediaPendingKey, key, string(b))
	}
	put("posts/old.jpg", now.Add(-25*time.Hour))
	put("posts/new.jpg", now.Add(-time.Hour))
	mr.HSet(consts.MediaPendingKey, "posts/broken.jpg", "{")

	blob := &memBlob{}
	j := NewMediaCleanupJob(blob, 24*time.Hour)
	j.now = func() time.Time { return now }

	n, err := j.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"posts/old.jpg"}, blob.deleted)
	keys, err := mr.HKeys(consts.MediaPendingKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/new.jpg"}, keys)
	assert.False(t, mr.Exists(consts.MediaCleanupLock))
}

func TestMediaCleanupJob_SkipsWhenLocked(t *testing.T) {
	mr := testutil.NewTestRedis(t)
	require.NoError(t, mr.Set(consts.MediaCleanupLock, "other"))
	mr.HSet(consts.MediaPendingKey, "posts/old.jpg", `{"owner_id":1,"created_at":1}`)

	blob := &memBlob{}
	n, err := NewMediaCleanupJob(blob, time.Hour).Cleanup(testutil.Ctx())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, blob.deleted)
}

func TestSearchReindexJob(t *testing.T) {
	mr := testutil.NewTestRedis(t)
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	leo := testutil.CreateUser(t, db, "leo")
	stale := testutil.CreatePost(t, db, leo, nil, "stale", now.Add(-72*time.Hour))
	fresh := testutil.CreatePost(t, db, leo, nil, "fresh", now.Add(-time.Hour))
	require.NoError(t, db.Model(stale).UpdateColumn("updated_at", now.Add(-72*time.Hour)).Error)
	require.NoError(t, db.Model(fresh).UpdateColumn("updated_at", now.Add(-time.Hour)).Error)

	index := &memIndex{docs: map[uint64]*es.PostES{}}
	j := NewSearchReindexJob(repository.NewPostRepo(db), index, 24*time.Hour)
	j.now = func() time.Time { return now }

	n, err := j.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Contains(t, index.docs, fresh.ID)
	assert.Equal(t, "leo", index.docs[fresh.ID].AuthorUsername)
	assert.NotContains(t, index.docs, stale.ID)

	mark, err := mr.Get(consts.SearchReindexMark)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(now.UnixMilli(), 10), mark)

	// 第二次从上次的时间点开始
	j.now = func() time.Time { return now.Add(time.Hour) }
	n, err = j.Reindex(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
