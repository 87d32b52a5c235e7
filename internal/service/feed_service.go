package service

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/model"
	"Yatube/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeGroup
	ScopeAuthor
	ScopeFollowing
)

// Scope 信息流范围
type Scope struct {
	Kind     ScopeKind
	Slug     string
	Username string
	ViewerID uint64
}

func GlobalScope() Scope                   { return Scope{Kind: ScopeGlobal} }
func GroupScope(slug string) Scope         { return Scope{Kind: ScopeGroup, Slug: slug} }
func AuthorScope(username string) Scope    { return Scope{Kind: ScopeAuthor, Username: username} }
func FollowingScope(viewerID uint64) Scope { return Scope{Kind: ScopeFollowing, ViewerID: viewerID} }

type FeedService interface {
	ListPosts(ctx context.Context, scope Scope, rawPage string) (*dto.PostPageDTO, error)
	GetGroupFeed(ctx context.Context, slug string, rawPage string) (*dto.GroupFeedDTO, error)
	GetProfile(ctx context.Context, username string, viewerID uint64, rawPage string) (*dto.ProfileDTO, error)
	GetPostDetail(ctx context.Context, postID uint64) (*dto.PostDetailDTO, error)
	FlushCache(ctx context.Context) error
}

// FeedOptions Cache 为 nil 时不缓存
type FeedOptions struct {
	PageSize  int
	Cache     FeedCache
	CacheTTL  time.Duration
	PublicURL func(key string) string
}

type feedServiceImpl struct {
	userRepo    repository.UserRepo
	groupRepo   repository.GroupRepo
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	followRepo  repository.FollowRepo
	paginator   Paginator
	cache       FeedCache
	cacheTTL    time.Duration
	publicURL   func(string) string
}

func NewFeedService(
	userRepo repository.UserRepo,
	groupRepo repository.GroupRepo,
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	followRepo repository.FollowRepo,
	opts FeedOptions,
) FeedService {
	return &feedServiceImpl{
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		paginator:   NewPaginator(opts.PageSize),
		cache:       opts.Cache,
		cacheTTL:    opts.CacheTTL,
		publicURL:   opts.PublicURL,
	}
}

// ListPosts 只有全站信息流走缓存
func (s *feedServiceImpl) ListPosts(ctx context.Context, scope Scope, rawPage string) (*dto.PostPageDTO, error) {
	switch scope.Kind {
	case ScopeGlobal:
		return s.listGlobal(ctx, rawPage)
	case ScopeGroup:
		group, err := s.groupRepo.GetGroupBySlug(ctx, scope.Slug)
		if err != nil {
			return nil, storeErr(err)
		}
		if group == nil {
			return nil, ErrGroupNotFound
		}
		return s.page(ctx, repository.PostQuery{GroupID: &group.ID}, rawPage)
	case ScopeAuthor:
		author, err := s.userRepo.GetUserByUsername(ctx, scope.Username)
		if err != nil {
			return nil, storeErr(err)
		}
		if author == nil {
			return nil, ErrUserNotFound
		}
		return s.page(ctx, repository.PostQuery{AuthorID: &author.ID}, rawPage)
	case ScopeFollowing:
		if scope.ViewerID == 0 {
			return nil, ErrUnauthorized
		}
		viewerID := scope.ViewerID
		return s.page(ctx, repository.PostQuery{FollowerID: &viewerID}, rawPage)
	default:
		return nil, ErrParamInvalid
	}
}

func (s *feedServiceImpl) listGlobal(ctx context.Context, rawPage string) (*dto.PostPageDTO, error) {
	requested := RequestedPage(rawPage)
	if s.cache == nil || requested > MaxCachedPage {
		return s.page(ctx, repository.PostQuery{}, rawPage)
	}

	key := GlobalFeedKey(requested)
	body, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "feed cache get failed", "key", key, "err", err)
	}
	if ok {
		var cached dto.PostPageDTO
		if err = json.Unmarshal(body, &cached); err == nil {
			return &cached, nil
		}
		log.WarnContext(ctx, "feed cache payload corrupted", "key", key, "err", err)
	}

	result, err := s.page(ctx, repository.PostQuery{}, rawPage)
	if err != nil {
		return nil, err
	}

	if body, err = json.Marshal(result); err == nil {
		if err = s.cache.Put(ctx, key, body, s.cacheTTL); err != nil {
			log.WarnContext(ctx, "feed cache put failed", "key", key, "err", err)
		}
	}
	return result, nil
}

func (s *feedServiceImpl) page(ctx context.Context, q repository.PostQuery, rawPage string) (*dto.PostPageDTO, error) {
	total, err := s.postRepo.CountPosts(ctx, q)
	if err != nil {
		return nil, storeErr(err)
	}

	pageNum, numPages := s.paginator.Resolve(rawPage, total)
	result := &dto.PostPageDTO{
		Items:      []*dto.PostDTO{},
		PageNumber: pageNum,
		TotalPages: numPages,
		TotalCount: total,
		PageSize:   s.paginator.PageSize,
		HasPrev:    pageNum > 1,
		HasNext:    pageNum < numPages,
	}
	if total == 0 {
		return result, nil
	}

	posts, err := s.postRepo.ListPosts(ctx, q, s.paginator.Offset(pageNum), s.paginator.PageSize)
	if err != nil {
		return nil, storeErr(err)
	}
	result.Items = s.toPostDTOs(posts)
	return result, nil
}

func (s *feedServiceImpl) GetGroupFeed(ctx context.Context, slug string, rawPage string) (*dto.GroupFeedDTO, error) {
	group, err := s.groupRepo.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, storeErr(err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	page, err := s.page(ctx, repository.PostQuery{GroupID: &group.ID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &dto.GroupFeedDTO{Group: toGroupDTO(group), Page: page}, nil
}

// GetProfile following 仅在访问者已登录且不是作者本人时可能为 true
func (s *feedServiceImpl) GetProfile(ctx context.Context, username string, viewerID uint64, rawPage string) (*dto.ProfileDTO, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err)
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	out := &dto.ProfileDTO{Author: toUserDTO(author)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.page(gctx, repository.PostQuery{AuthorID: &author.ID}, rawPage)
		if err != nil {
			return err
		}
		out.Page = page
		out.PostsCount = page.TotalCount
		return nil
	})
	g.Go(func() error {
		n, err := s.followRepo.GetFollowerCount(gctx, author.ID)
		out.FollowerCount = n
		return storeErr(err)
	})
	g.Go(func() error {
		n, err := s.followRepo.GetFollowingCount(gctx, author.ID)
		out.FollowingCount = n
		return storeErr(err)
	})
	if viewerID != 0 && viewerID != author.ID {
		g.Go(func() error {
			ok, err := s.followRepo.IsFollowing(gctx, viewerID, author.ID)
			out.Following = ok
			return storeErr(err)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *feedServiceImpl) GetPostDetail(ctx context.Context, postID uint64) (*dto.PostDetailDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	out := &dto.PostDetailDTO{Post: toPostDTO(post, s.publicURL)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.postRepo.CountPosts(gctx, repository.PostQuery{AuthorID: &post.AuthorID})
		out.AuthorPostsCount = n
		return storeErr(err)
	})
	g.Go(func() error {
		comments, err := s.commentRepo.ListCommentsByPost(gctx, post.ID)
		if err != nil {
			return storeErr(err)
		}
		out.Comments = make([]*dto.CommentDTO, 0, len(comments))
		for _, c := range comments {
			out.Comments = append(out.Comments, toCommentDTO(c))
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *feedServiceImpl) FlushCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Flush(ctx); err != nil {
		return storeErr(err)
	}
	log.InfoContext(ctx, "feed cache flushed")
	return nil
}

func (s *feedServiceImpl) toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p, s.publicURL))
	}
	return out
}
