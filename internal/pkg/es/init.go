package es

import (
	"Yatube/internal/api/config"
	"Yatube/internal/pkg/logger"
	"context"
	log "log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/pkg/errors"
)

var Client *elasticsearch.TypedClient

var PostIndex = "yatube-posts"

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// InitClient 初始化 Elasticsearch 客户端
func InitClient(cfg config.ElasticConfig) error {
	if cfg.PostIndex != "" {
		PostIndex = cfg.PostIndex
	}

	client, err := NewClient(cfg, http.DefaultTransport)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	ctx := context.Background()
	info, err := client.Info().Do(ctx)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	if err = EnsureIndex(ctx, client, PostIndex); err != nil {
		return err
	}

	Client = client
	log.Info("Connected to Elasticsearch", "version", info.Version.Int, "index", PostIndex)
	return nil
}

// NewClient 构造带日志传输层的 TypedClient
func NewClient(cfg config.ElasticConfig, transport http.RoundTripper) (*elasticsearch.TypedClient, error) {
	return elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses: []string{cfg.Address},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: &logger.ESTransport{
			Transport: transport,
		},
	})
}

// EnsureIndex 索引不存在时创建
func EnsureIndex(ctx context.Context, client *elasticsearch.TypedClient, index string) error {
	exists, err := client.Indices.Exists(index).Do(ctx)
	if err != nil {
		return errors.Wrapf(err, "check index %s", index)
	}
	if exists {
		return nil
	}
	if _, err = client.Indices.Create(index).Do(ctx); err != nil {
		return errors.Wrapf(err, "create index %s", index)
	}
	log.Info("Elasticsearch index created", "index", index)
	return nil
}
