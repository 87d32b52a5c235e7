package repository

import (
	"testing"
	"time"

	"Yatube/internal/model"
	"Yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestPostRepo_ListOrderingAndScopes(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	repo := NewPostRepo(db)

	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")
	cats := testutil.CreateGroup(t, db, "cats")

	p1 := testutil.CreatePost(t, db, leo, cats, "first", base)
	p2 := testutil.CreatePost(t, db, ann, nil, "second", base.Add(time.Minute))
	// 与 p2 同一时刻，ID 更大排在前面
	p3 := testutil.CreatePost(t, db, leo, nil, "third", base.Add(time.Minute))

	all, err := repo.ListPosts(ctx, PostQuery{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint64{p3.ID, p2.ID, p1.ID}, []uint64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "leo", all[0].Author.Username)

	byGroup, err := repo.ListPosts(ctx, PostQuery{GroupID: &cats.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, p1.ID, byGroup[0].ID)
	require.NotNil(t, byGroup[0].Group)
	assert.Equal(t, "cats", byGroup[0].Group.Slug)

	n, err := repo.CountPosts(ctx, PostQuery{AuthorID: &leo.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	page2, err := repo.ListPosts(ctx, PostQuery{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, p1.ID, page2[0].ID)
}

func TestPostRepo_FollowerScope(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	repo := NewPostRepo(db)

	reader := testutil.CreateUser(t, db, "reader")
	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")
	testutil.CreateFollow(t, db, reader, leo)

	testutil.CreatePost(t, db, leo, nil, "by leo", base)
	testutil.CreatePost(t, db, ann, nil, "by ann", base)

	posts, err := repo.ListPosts(ctx, PostQuery{FollowerID: &reader.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "by leo", posts[0].Text)

	n, err := repo.CountPosts(ctx, PostQuery{FollowerID: &ann.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostRepo_UpdateKeepsPubDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	repo := NewPostRepo(db)

	leo := testutil.CreateUser(t, db, "leo")
	cats := testutil.CreateGroup(t, db, "cats")
	p := testutil.CreatePost(t, db, leo, cats, "old", base)

	p.Text = "new"
	p.GroupID = nil
	p.PubDate = base.Add(time.Hour)
	require.NoError(t, repo.UpdatePost(ctx, p))

	got, err := repo.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Text)
	assert.Nil(t, got.GroupID)
	assert.True(t, got.PubDate.Equal(base))
}

func TestPostRepo_DeleteCascadesComments(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	posts := NewPostRepo(db)
	comments := NewCommentRepo(db)

	leo := testutil.CreateUser(t, db, "leo")
	p := testutil.CreatePost(t, db, leo, nil, "post", base)
	require.NoError(t, comments.CreateComment(ctx, &model.Comment{PostID: p.ID, AuthorID: leo.ID, Text: "c", Created: base}))

	require.NoError(t, posts.DeletePost(ctx, p.ID))

	got, err := posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	n, err := comments.CountCommentsByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostRepo_GetPostsByIdsKeepsOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	repo := NewPostRepo(db)

	leo := testutil.CreateUser(t, db, "leo")
	a := testutil.CreatePost(t, db, leo, nil, "a", base)
	b := testutil.CreatePost(t, db, leo, nil, "b", base)

	got, err := repo.GetPostsByIds(ctx, []uint64{b.ID, 999, a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}

func TestPostRepo_ListPostsUpdatedSince(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	repo := NewPostRepo(db)

	leo := testutil.CreateUser(t, db, "leo")
	a := testutil.CreatePost(t, db, leo, nil, "a", base)
	b := testutil.CreatePost(t, db, leo, nil, "b", base)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", a.ID).UpdateColumn("updated_at", base.Add(-48*time.Hour)).Error)

	got, err := repo.ListPostsUpdatedSince(ctx, time.Now().Add(-time.Hour), 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}

func TestCommentRepo_Order(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	repo := NewCommentRepo(db)

	leo := testutil.CreateUser(t, db, "leo")
	p := testutil.CreatePost(t, db, leo, nil, "post", base)
	for i, text := range []string{"one", "two", "three"} {
		require.NoError(t, repo.CreateComment(ctx, &model.Comment{
			PostID: p.ID, AuthorID: leo.ID, Text: text, Created: base.Add(time.Duration(i) * time.Second),
		}))
	}

	list, err := repo.ListCommentsByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "one", list[0].Text)
	assert.Equal(t, "three", list[2].Text)
	assert.Equal(t, "leo", list[0].Author.Username)
}

func TestFollowRepo_UniqueAndIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	repo := NewFollowRepo(db)

	reader := testutil.CreateUser(t, db, "reader")
	leo := testutil.CreateUser(t, db, "leo")

	require.NoError(t, repo.CreateFollow(ctx, &model.Follow{UserID: reader.ID, AuthorID: leo.ID}))
	require.NoError(t, repo.CreateFollow(ctx, &model.Follow{UserID: reader.ID, AuthorID: leo.ID}))

	n, err := repo.GetFollowerCount(ctx, leo.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err := repo.IsFollowing(ctx, reader.ID, leo.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err := repo.FollowedAuthorsOf(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{leo.ID}, ids)

	require.NoError(t, repo.DeleteFollow(ctx, reader.ID, leo.ID))
	require.NoError(t, repo.DeleteFollow(ctx, reader.ID, leo.ID))
	n, err = repo.GetFollowingCount(ctx, reader.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGroupRepo_DeleteNullsPosts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	groups := NewGroupRepo(db)
	posts := NewPostRepo(db)

	leo := testutil.CreateUser(t, db, "leo")
	cats := testutil.CreateGroup(t, db, "cats")
	p := testutil.CreatePost(t, db, leo, cats, "post", base)

	require.NoError(t, groups.DeleteGroup(ctx, cats.ID))

	got, err := posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.GroupID)

	g, err := groups.GetGroupBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestUserRepo_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	users := NewUserRepo(db)
	posts := NewPostRepo(db)
	follows := NewFollowRepo(db)
	comments := NewCommentRepo(db)

	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")
	p := testutil.CreatePost(t, db, leo, nil, "post", base)
	annPost := testutil.CreatePost(t, db, ann, nil, "ann post", base)
	testutil.CreateFollow(t, db, ann, leo)
	require.NoError(t, comments.CreateComment(ctx, &model.Comment{PostID: annPost.ID, AuthorID: leo.ID, Text: "hi", Created: base}))

	require.NoError(t, users.DeleteUser(ctx, leo.ID))

	got, err := posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	n, err := follows.GetFollowingCount(ctx, ann.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = comments.CountCommentsByPost(ctx, annPost.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	u, err := users.GetUserByUsername(ctx, "ann")
	require.NoError(t, err)
	require.NotNil(t, u)
}

func TestPostRepo_FollowingScopeMatchesFollowedAuthors(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	posts := NewPostRepo(db)
	follows := NewFollowRepo(db)

	reader := testutil.CreateUser(t, db, "reader")
	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreateFollow(t, db, reader, leo)
	testutil.CreateFollow(t, db, reader, bob)
	testutil.CreateFollow(t, db, ann, reader)
	for i, u := range []*model.User{leo, ann, bob, reader} {
		testutil.CreatePost(t, db, u, nil, u.Username, base.Add(time.Duration(i)*time.Minute))
	}

	ids, err := follows.FollowedAuthorsOf(ctx, reader.ID)
	require.NoError(t, err)

	q := PostQuery{FollowerID: &reader.ID}
	list, err := posts.ListPosts(ctx, q, 0, 10)
	require.NoError(t, err)
	authors := make([]uint64, 0, len(list))
	for _, p := range list {
		authors = append(authors, p.AuthorID)
	}
	assert.ElementsMatch(t, ids, authors)

	n, err := posts.CountPosts(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, len(ids), n)
}
