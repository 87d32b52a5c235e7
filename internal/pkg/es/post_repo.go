package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 1000

type PostRepo interface {
	IndexPost(ctx context.Context, post *PostES) error
	DeletePost(ctx context.Context, id uint64) error
	SearchPosts(ctx context.Context, query string, from, size int) ([]uint64, int64, error)
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
	index  string
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client, index: PostIndex}
}

// IndexPost 以 updated_at 作为外部版本号，乱序到达的旧版本被忽略
func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES) error {
	docID := strconv.FormatUint(post.ID, 10)

	_, err := s.client.Index(s.index).
		Id(docID).
		Document(post).
		Version(strconv.FormatInt(post.UpdatedAt.UnixMilli(), 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == ConflictCode {
			return nil
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(s.index, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}

	return nil
}

// SearchPosts 全文检索，返回命中的帖子 ID（按相关度、发布时间排序）与总数
func (s *PostRepoImpl) SearchPosts(ctx context.Context, query string, from, size int) ([]uint64, int64, error) {
	if query == "" || from >= MaxSearchDepth {
		return []uint64{}, 0, nil
	}

	resp, err := s.client.Search().
		Index(s.index).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  query,
				Fields: []string{"text^2", "author_username"},
			},
		}).
		Sort(
			types.SortOptions{Score_: &types.ScoreSort{Order: &sortorder.Desc}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"pub_date": {Order: &sortorder.Desc},
			}},
		).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}

	ids := make([]uint64, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc PostES
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		ids = append(ids, doc.ID)
	}
	return ids, total, nil
}
