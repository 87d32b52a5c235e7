package service

import (
	"strings"
	"testing"
	"time"

	"Yatube/internal/api/dto"
	"Yatube/internal/model"
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/util"
	"Yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type postFixture struct {
	db        *gorm.DB
	repos     repos
	cache     *MemoryFeedCache
	blob      *fakeBlob
	revisions *fakeRevisions
	search    *fakeSearch
	feed      FeedService
	posts     PostService
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	testutil.NewTestRedis(t)
	db := testutil.NewTestDB(t)
	r := newRepos(db)
	f := &postFixture{
		db:        db,
		repos:     r,
		cache:     NewMemoryFeedCache(),
		blob:      newFakeBlob(),
		revisions: &fakeRevisions{},
		search:    newFakeSearch(),
	}
	f.feed = r.feed(FeedOptions{Cache: f.cache, CacheTTL: time.Minute, PublicURL: f.blob.PublicURL})
	f.posts = NewPostService(r.post, r.group, PostOptions{
		Cache:        f.cache,
		FlushOnWrite: true,
		IndexOnWrite: true,
		Blob:         f.blob,
		Registry:     NewRedisMediaRegistry(),
		Revisions:    f.revisions,
		Search:       f.search,
	})
	return f
}

func (f *postFixture) pending(t *testing.T, key string, owner uint64) {
	t.Helper()
	require.NoError(t, f.blob.Upload(testutil.Ctx(), key, strings.NewReader("jpeg"), 4, "image/jpeg"))
	meta := &dto.MediaPendingMeta{OwnerID: owner, MimeType: "image/jpeg", CreatedAt: time.Now().Unix()}
	require.NoError(t, NewRedisMediaRegistry().Register(testutil.Ctx(), key, meta))
}

func TestPostService_CreateRejectsEmptyText(t *testing.T) {
	f := newPostFixture(t)
	author := testutil.CreateUser(t, f.db, "leo")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.posts.CreatePost(testutil.Ctx(), author.ID, &dto.PostBaseDTO{Text: text})
		assert.ErrorIs(t, err, ErrPostTextEmpty, "%q", text)
	}
	var n int64
	require.NoError(t, f.db.Model(&model.Post{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPostService_TextStoredAsWritten(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	author := testutil.CreateUser(t, f.db, "leo")

	for _, text := range []string{"if a<b and c>d then", "use <T> generics", "x <y z", "<br>", "<b></b>", "&lt;b&gt; literal"} {
		created, err := f.posts.CreatePost(ctx, author.ID, &dto.PostBaseDTO{Text: "  " + text + "\n"})
		require.NoError(t, err, "%q", text)
		assert.Equal(t, text, created.Text)
		assert.NotContains(t, created.TextHTML, "<b>")

		// 反复编辑文本保持不变
		for i := 0; i < 2; i++ {
			edited, err := f.posts.EditPost(ctx, created.ID, author.ID, &dto.PostBaseDTO{Text: created.Text})
			require.NoError(t, err)
			assert.Equal(t, text, edited.Text)
		}

		var stored model.Post
		require.NoError(t, f.db.First(&stored, created.ID).Error)
		assert.Equal(t, text, stored.Text)
	}
}

func TestPostService_CreateRequiresAuthor(t *testing.T) {
	f := newPostFixture(t)
	_, err := f.posts.CreatePost(testutil.Ctx(), 0, &dto.PostBaseDTO{Text: "hello"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPostService_CreateAppearsFirstInGlobalFeed(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	author := testutil.CreateUser(t, f.db, "leo")
	testutil.CreatePost(t, f.db, author, nil, "old", base)

	// 预热缓存，写入后应被清空
	_, err := f.feed.ListPosts(ctx, GlobalScope(), "1")
	require.NoError(t, err)

	before := time.Now()
	created, err := f.posts.CreatePost(ctx, author.ID, &dto.PostBaseDTO{Text: "  fresh news  "})
	require.NoError(t, err)
	assert.Equal(t, "fresh news", created.Text)
	assert.Equal(t, "leo", created.Author.Username)
	assert.False(t, created.PubDate.Before(before.Truncate(time.Second)))

	res, err := f.feed.ListPosts(ctx, GlobalScope(), "1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	assert.Equal(t, created.ID, res.Items[0].ID)
	assert.True(t, f.search.indexed(created.ID))
}

func TestPostService_CreateWithoutFlushKeepsCache(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	author := testutil.CreateUser(t, f.db, "leo")
	svc := NewPostService(f.repos.post, f.repos.group, PostOptions{Cache: f.cache})

	_, err := f.feed.ListPosts(ctx, GlobalScope(), "1")
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, author.ID, &dto.PostBaseDTO{Text: "hidden for now"})
	require.NoError(t, err)

	res, err := f.feed.ListPosts(ctx, GlobalScope(), "1")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestPostService_CreateValidatesGroup(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	author := testutil.CreateUser(t, f.db, "leo")
	cats := testutil.CreateGroup(t, f.db, "cats")

	_, err := f.posts.CreatePost(ctx, author.ID, &dto.PostBaseDTO{Text: "x", GroupID: util.PtrUint64(cats.ID + 100)})
	assert.ErrorIs(t, err, ErrGroupNotFound)

	created, err := f.posts.CreatePost(ctx, author.ID, &dto.PostBaseDTO{Text: "x", GroupID: util.PtrUint64(cats.ID)})
	require.NoError(t, err)
	require.NotNil(t, created.Group)
	assert.Equal(t, "cats", created.Group.Slug)
}

func TestPostService_CreateWithImage(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	author := testutil.CreateUser(t, f.db, "leo")
	other := testutil.CreateUser(t, f.db, "ann")
	key := "posts/2024/01/01/a.jpg"
	f.pending(t, key, author.ID)

	_, err := f.posts.CreatePost(ctx, author.ID, &dto.PostBaseDTO{Text: "pic", Image: util.PtrString("posts/unknown.jpg")})
	assert.ErrorIs(t, err, ErrMediaNotFound)
	_, err = f.posts.CreatePost(ctx, other.ID, &dto.PostBaseDTO{Text: "pic", Image: util.PtrString(key)})
	assert.ErrorIs(t, err, ErrMediaNotFound)

	created, err := f.posts.CreatePost(ctx, author.ID, &dto.PostBaseDTO{Text: "pic", Image: util.PtrString(key)})
	require.NoError(t, err)
	require.NotNil(t, created.Image)
	assert.Equal(t, key, *created.Image)
	require.NotNil(t, created.ImageURL)
	assert.Equal(t, "http://cdn.test/media/"+key, *created.ImageURL)

	// 引用后从待清理列表移除
	err = NewRedisMediaRegistry().Verify(ctx, key, author.ID)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestPostService_EditByNonAuthorForbidden(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	leo := testutil.CreateUser(t, f.db, "leo")
	ann := testutil.CreateUser(t, f.db, "ann")
	post := testutil.CreatePost(t, f.db, leo, nil, "original", base)

	_, err := f.posts.EditPost(ctx, post.ID, ann.ID, &dto.PostBaseDTO{Text: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := f.repos.post.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Text)
	assert.Empty(t, f.revisions.revs)

	_, err = f.posts.EditPost(ctx, post.ID, 0, &dto.PostBaseDTO{Text: "anon"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.posts.EditPost(ctx, post.ID+100, leo.ID, &dto.PostBaseDTO{Text: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = f.posts.EditPost(ctx, post.ID, leo.ID, &dto.PostBaseDTO{Text: " "})
	assert.ErrorIs(t, err, ErrPostTextEmpty)
}

func TestPostService_EditKeepsPubDate(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	leo := testutil.CreateUser(t, f.db, "leo")
	cats := testutil.CreateGroup(t, f.db, "cats")
	post := testutil.CreatePost(t, f.db, leo, cats, "original", base)

	edited, err := f.posts.EditPost(ctx, post.ID, leo.ID, &dto.PostBaseDTO{Text: "updated"})
	require.NoError(t, err)
	assert.Equal(t, "updated", edited.Text)
	assert.True(t, edited.PubDate.Equal(base))
	assert.Nil(t, edited.Group)

	revs, err := f.posts.ListRevisions(ctx, post.ID, leo.ID)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "original", revs[0].Text)
	require.NotNil(t, revs[0].GroupID)
	assert.Equal(t, cats.ID, *revs[0].GroupID)

	_, err = f.posts.ListRevisions(ctx, post.ID, 0)
	assert.ErrorIs(t, err, ErrUnauthorized)
	other := testutil.CreateUser(t, f.db, "ann")
	_, err = f.posts.ListRevisions(ctx, post.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPostService_EditImageLifecycle(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	leo := testutil.CreateUser(t, f.db, "leo")
	first, second := "posts/2024/01/01/one.jpg", "posts/2024/01/01/two.jpg"
	f.pending(t, first, leo.ID)
	f.pending(t, second, leo.ID)

	created, err := f.posts.CreatePost(ctx, leo.ID, &dto.PostBaseDTO{Text: "pic", Image: &first})
	require.NoError(t, err)

	// 不传 image 保留原图
	kept, err := f.posts.EditPost(ctx, created.ID, leo.ID, &dto.PostBaseDTO{Text: "pic 2"})
	require.NoError(t, err)
	require.NotNil(t, kept.Image)
	assert.Equal(t, first, *kept.Image)

	swapped, err := f.posts.EditPost(ctx, created.ID, leo.ID, &dto.PostBaseDTO{Text: "pic 3", Image: &second})
	require.NoError(t, err)
	assert.Equal(t, second, *swapped.Image)
	assert.Equal(t, first, waitKey(t, f.blob.deleted))

	empty := ""
	removed, err := f.posts.EditPost(ctx, created.ID, leo.ID, &dto.PostBaseDTO{Text: "no pic", Image: &empty})
	require.NoError(t, err)
	assert.Nil(t, removed.Image)
	assert.Equal(t, second, waitKey(t, f.blob.deleted))
}

func TestPostService_Delete(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	leo := testutil.CreateUser(t, f.db, "leo")
	ann := testutil.CreateUser(t, f.db, "ann")
	created, err := f.posts.CreatePost(ctx, leo.ID, &dto.PostBaseDTO{Text: "bye soon"})
	require.NoError(t, err)
	require.NoError(t, f.db.Omit("Author").Create(&model.Comment{PostID: created.ID, AuthorID: ann.ID, Text: "hi", Created: time.Now()}).Error)

	res, err := f.feed.ListPosts(ctx, GlobalScope(), "1")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	assert.ErrorIs(t, f.posts.DeletePost(ctx, created.ID, ann.ID), ErrForbidden)
	assert.ErrorIs(t, f.posts.DeletePost(ctx, created.ID, 0), ErrUnauthorized)
	require.NoError(t, f.posts.DeletePost(ctx, created.ID, leo.ID))
	assert.ErrorIs(t, f.posts.DeletePost(ctx, created.ID, leo.ID), ErrPostNotFound)

	var comments int64
	require.NoError(t, f.db.Model(&model.Comment{}).Where("post_id = ?", created.ID).Count(&comments).Error)
	assert.Zero(t, comments)
	assert.False(t, f.search.indexed(created.ID))

	res, err = f.feed.ListPosts(ctx, GlobalScope(), "1")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestPostService_Search(t *testing.T) {
	f := newPostFixture(t)
	ctx := testutil.Ctx()
	leo := testutil.CreateUser(t, f.db, "leo")
	p1 := testutil.CreatePost(t, f.db, leo, nil, "cats", base)
	p2 := testutil.CreatePost(t, f.db, leo, nil, "more cats", base.Add(time.Minute))
	f.search.hits = []uint64{p1.ID, p2.ID}

	res, err := f.posts.SearchPosts(ctx, "cats", "1")
	require.NoError(t, err)
	assert.Equal(t, []uint64{p1.ID, p2.ID}, postIDs(res.Items))
	assert.EqualValues(t, 2, res.TotalCount)
	assert.Equal(t, [2]int{0, DefaultPageSize}, f.search.lastReq)

	_, err = f.posts.SearchPosts(ctx, "   ", "1")
	assert.ErrorIs(t, err, ErrParamInvalid)

	disabled := NewPostService(f.repos.post, f.repos.group, PostOptions{})
	_, err = disabled.SearchPosts(ctx, "cats", "1")
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func TestPostService_PendingKeyLayout(t *testing.T) {
	mr := testutil.NewTestRedis(t)
	require.NoError(t, NewRedisMediaRegistry().Register(testutil.Ctx(), "posts/k.jpg", &dto.MediaPendingMeta{OwnerID: 7}))
	assert.True(t, mr.Exists(consts.MediaPendingKey))
	assert.NoError(t, NewRedisMediaRegistry().Verify(testutil.Ctx(), "posts/k.jpg", 7))
}
