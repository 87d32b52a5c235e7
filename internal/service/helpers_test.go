package service

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/pkg/es"
	"Yatube/internal/pkg/mongo"
	"Yatube/internal/repository"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type repos struct {
	user    repository.UserRepo
	group   repository.GroupRepo
	post    repository.PostRepo
	comment repository.CommentRepo
	follow  repository.FollowRepo
}

func newRepos(db *gorm.DB) repos {
	return repos{
		user:    repository.NewUserRepo(db),
		group:   repository.NewGroupRepo(db),
		post:    repository.NewPostRepo(db),
		comment: repository.NewCommentRepo(db),
		follow:  repository.NewFollowRepo(db),
	}
}

func (r repos) feed(opts FeedOptions) FeedService {
	return NewFeedService(r.user, r.group, r.post, r.comment, r.follow, opts)
}

type fakeBlob struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted chan string
	failPut bool
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: map[string][]byte{}, deleted: make(chan string, 8)}
}

func (f *fakeBlob) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.failPut {
		return errors.New("bucket unavailable")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.objects[key] = b
	f.mu.Unlock()
	return nil
}

func (f *fakeBlob) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	delete(f.objects, key)
	f.mu.Unlock()
	f.deleted <- key
	return nil
}

func (f *fakeBlob) PublicURL(key string) string {
	return "http://cdn.test/media/" + key
}

func (f *fakeBlob) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

type fakeRevisions struct {
	mu   sync.Mutex
	revs []*mongo.PostRevision
}

func (f *fakeRevisions) CreateRevision(_ context.Context, rev *mongo.PostRevision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revs = append(f.revs, rev)
	return nil
}

func (f *fakeRevisions) ListRevisions(_ context.Context, postID uint64) ([]*mongo.PostRevision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*mongo.PostRevision
	for i := len(f.revs) - 1; i >= 0; i-- {
		if f.revs[i].PostID == postID {
			out = append(out, f.revs[i])
		}
	}
	return out, nil
}

func (f *fakeRevisions) DeleteRevisions(_ context.Context, postID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.revs[:0]
	for _, r := range f.revs {
		if r.PostID != postID {
			kept = append(kept, r)
		}
	}
	f.revs = kept
	return nil
}

type fakeSearch struct {
	mu      sync.Mutex
	docs    map[uint64]*es.PostES
	hits    []uint64
	lastReq [2]int
}

func newFakeSearch() *fakeSearch {
	return &fakeSearch{docs: map[uint64]*es.PostES{}}
}

func (f *fakeSearch) IndexPost(_ context.Context, post *es.PostES) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[post.ID] = post
	return nil
}

func (f *fakeSearch) DeletePost(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeSearch) SearchPosts(_ context.Context, _ string, from, size int) ([]uint64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = [2]int{from, size}
	end := min(from+size, len(f.hits))
	if from >= end {
		return []uint64{}, int64(len(f.hits)), nil
	}
	return f.hits[from:end], int64(len(f.hits)), nil
}

func (f *fakeSearch) indexed(id uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[id]
	return ok
}

func postIDs(page []*dto.PostDTO) []uint64 {
	out := make([]uint64, 0, len(page))
	for _, p := range page {
		out = append(out, p.ID)
	}
	return out
}

func waitKey(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case k := <-ch:
		return k
	case <-time.After(2 * time.Second):
		t.Fatal("blob delete not observed")
		return ""
	}
}
