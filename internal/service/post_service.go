package service

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/model"
	"Yatube/internal/pkg/es"
	"Yatube/internal/pkg/mongo"
	"Yatube/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID uint64, in *dto.PostBaseDTO) (*dto.PostDTO, error)
	EditPost(ctx context.Context, postID, editorID uint64, in *dto.PostBaseDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, postID, editorID uint64) error
	ListRevisions(ctx context.Context, postID, viewerID uint64) ([]*dto.PostRevisionDTO, error)
	SearchPosts(ctx context.Context, query string, rawPage string) (*dto.PostPageDTO, error)
}

// PostOptions 可选依赖为 nil 时对应功能关闭
type PostOptions struct {
	Cache        FeedCache
	FlushOnWrite bool
	// IndexOnWrite 未启用 binlog 同步时由写操作直接更新索引
	IndexOnWrite bool
	Blob         BlobStore
	Registry     MediaRegistry
	Revisions    mongo.PostRevisionRepo
	Search       es.PostRepo
	PageSize     int
}

type postServiceImpl struct {
	postRepo  repository.PostRepo
	groupRepo repository.GroupRepo
	opts      PostOptions
	paginator Paginator
	now       func() time.Time
}

func NewPostService(postRepo repository.PostRepo, groupRepo repository.GroupRepo, opts PostOptions) PostService {
	return &postServiceImpl{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		opts:      opts,
		paginator: NewPaginator(opts.PageSize),
		now:       time.Now,
	}
}

// CreatePost 创建帖子，pub_date 取当前时间
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, in *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if authorID == 0 {
		return nil, ErrUnauthorized
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrPostTextEmpty
	}
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}

	image := normalizeImage(in.Image)
	if image != nil {
		if err := s.verifyImage(ctx, *image, authorID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	post := &model.Post{
		Text:      text,
		PubDate:   now,
		AuthorID:  authorID,
		GroupID:   in.GroupID,
		Image:     image,
		UpdatedAt: now,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, storeErr(err)
	}

	if image != nil {
		s.releaseImage(ctx, *image)
	}
	return s.afterWrite(ctx, post.ID)
}

// EditPost 仅作者可编辑；Image 为 nil 保留原图，为空串移除图片
func (s *postServiceImpl) EditPost(ctx context.Context, postID, editorID uint64, in *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if editorID == 0 {
		return nil, ErrUnauthorized
	}
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != editorID {
		return nil, ErrForbidden
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrPostTextEmpty
	}
	if err = s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}

	oldImage := post.Image
	newImage := oldImage
	if in.Image != nil {
		newImage = normalizeImage(in.Image)
	}
	imageChanged := !sameImage(oldImage, newImage)
	if imageChanged && newImage != nil {
		if err = s.verifyImage(ctx, *newImage, editorID); err != nil {
			return nil, err
		}
	}

	s.recordRevision(ctx, post, editorID)

	post.Text = text
	post.GroupID = in.GroupID
	post.Group = nil
	post.Image = newImage
	post.UpdatedAt = s.now()
	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, storeErr(err)
	}

	if imageChanged {
		if newImage != nil {
			s.releaseImage(ctx, *newImage)
		}
		if oldImage != nil {
			s.deleteBlobAsync(ctx, *oldImage)
		}
	}
	return s.afterWrite(ctx, post.ID)
}

// DeletePost 仅作者可删除，评论随帖子一起删除
func (s *postServiceImpl) DeletePost(ctx context.Context, postID, editorID uint64) error {
	if editorID == 0 {
		return ErrUnauthorized
	}
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return storeErr(err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != editorID {
		return ErrForbidden
	}

	if err = s.postRepo.DeletePost(ctx, postID); err != nil {
		return storeErr(err)
	}

	if post.Image != nil {
		s.deleteBlobAsync(ctx, *post.Image)
	}
	if s.opts.Revisions != nil {
		if err = s.opts.Revisions.DeleteRevisions(ctx, postID); err != nil {
			log.WarnContext(ctx, "delete post revisions failed", "post_id", postID, "err", err)
		}
	}
	if s.opts.IndexOnWrite && s.opts.Search != nil {
		if err = s.opts.Search.DeletePost(ctx, postID); err != nil {
			log.WarnContext(ctx, "delete post from index failed", "post_id", postID, "err", err)
		}
	}
	s.flush(ctx)
	return nil
}

// ListRevisions 只有作者能查看编辑历史
func (s *postServiceImpl) ListRevisions(ctx context.Context, postID, viewerID uint64) ([]*dto.PostRevisionDTO, error) {
	if viewerID == 0 {
		return nil, ErrUnauthorized
	}
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != viewerID {
		return nil, ErrForbidden
	}
	if s.opts.Revisions == nil {
		return []*dto.PostRevisionDTO{}, nil
	}

	revs, err := s.opts.Revisions.ListRevisions(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]*dto.PostRevisionDTO, 0, len(revs))
	for _, r := range revs {
		out = append(out, &dto.PostRevisionDTO{
			Text:     r.Text,
			GroupID:  r.GroupID,
			Image:    r.Image,
			EditorID: r.EditorID,
			EditedAt: r.EditedAt,
		})
	}
	return out, nil
}

// SearchPosts 检索结果按相关度排序，帖子内容以数据库为准
func (s *postServiceImpl) SearchPosts(ctx context.Context, query string, rawPage string) (*dto.PostPageDTO, error) {
	if s.opts.Search == nil {
		return nil, ErrSearchUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrParamInvalid
	}

	page := RequestedPage(rawPage)
	ids, total, err := s.opts.Search.SearchPosts(ctx, query, s.paginator.Offset(page), s.paginator.PageSize)
	if err != nil {
		return nil, storeErr(err)
	}
	posts, err := s.postRepo.GetPostsByIds(ctx, ids)
	if err != nil {
		return nil, storeErr(err)
	}

	numPages := s.paginator.NumPages(total)
	items := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostDTO(p, s.publicURL()))
	}
	return &dto.PostPageDTO{
		Items:      items,
		PageNumber: page,
		TotalPages: numPages,
		TotalCount: total,
		PageSize:   s.paginator.PageSize,
		HasPrev:    page > 1,
		HasNext:    page < numPages,
	}, nil
}

// afterWrite 重新读取帖子，按配置刷新缓存与索引
func (s *postServiceImpl) afterWrite(ctx context.Context, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if s.opts.IndexOnWrite && s.opts.Search != nil {
		if err = s.opts.Search.IndexPost(ctx, es.ToPostES(post)); err != nil {
			log.WarnContext(ctx, "index post failed", "post_id", post.ID, "err", err)
		}
	}
	s.flush(ctx)
	return toPostDTO(post, s.publicURL()), nil
}

func (s *postServiceImpl) flush(ctx context.Context) {
	if !s.opts.FlushOnWrite || s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Flush(ctx); err != nil {
		log.WarnContext(ctx, "flush feed cache failed", "err", err)
	}
}

func (s *postServiceImpl) checkGroup(ctx context.Context, groupID *uint64) error {
	if groupID == nil {
		return nil
	}
	group, err := s.groupRepo.GetGroupById(ctx, *groupID)
	if err != nil {
		return storeErr(err)
	}
	if group == nil {
		return ErrGroupNotFound
	}
	return nil
}

func (s *postServiceImpl) verifyImage(ctx context.Context, key string, ownerID uint64) error {
	if s.opts.Registry == nil {
		return ErrMediaNotFound
	}
	return s.opts.Registry.Verify(ctx, key, ownerID)
}

func (s *postServiceImpl) releaseImage(ctx context.Context, key string) {
	if err := s.opts.Registry.Release(ctx, key); err != nil {
		log.WarnContext(ctx, "release pending media failed", "key", key, "err", err)
	}
}

func (s *postServiceImpl) deleteBlobAsync(ctx context.Context, key string) {
	if s.opts.Blob == nil {
		return
	}
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.opts.Blob.Delete(bgCtx, key); err != nil {
			log.WarnContext(bgCtx, "delete media failed", "key", key, "err", err)
		}
	}()
}

func (s *postServiceImpl) recordRevision(ctx context.Context, post *model.Post, editorID uint64) {
	if s.opts.Revisions == nil {
		return
	}
	rev := &mongo.PostRevision{
		PostID:   post.ID,
		EditorID: editorID,
		Text:     post.Text,
		GroupID:  post.GroupID,
		Image:    post.Image,
		EditedAt: s.now(),
	}
	if err := s.opts.Revisions.CreateRevision(ctx, rev); err != nil {
		log.WarnContext(ctx, "record post revision failed", "post_id", post.ID, "err", err)
	}
}

func (s *postServiceImpl) publicURL() func(string) string {
	if s.opts.Blob == nil {
		return nil
	}
	return s.opts.Blob.PublicURL
}

func normalizeImage(image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	return image
}

func sameImage(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
