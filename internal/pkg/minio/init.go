package minio

import (
	"Yatube/internal/api/config"
	"context"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// BucketName 帖子图片存储桶
	BucketName string
)

// Init 初始化 MinIO 客户端并确保存储桶存在
func Init(cfg config.MinIOConfig) error {
	endpoint := cfg.InternalEndpoint
	useSSL := cfg.InternalUseSSL
	if endpoint == "" {
		endpoint = cfg.ExternalEndpoint
		useSSL = cfg.ExternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize minio client")
	}

	ctx := context.Background()
	if err = ensureBucket(ctx, client, cfg.Bucket); err != nil {
		return err
	}

	Client = client
	BucketName = cfg.Bucket
	return nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return errors.Wrap(err, "failed to connect to minio server")
	}
	if exists {
		return nil
	}
	if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.Wrapf(err, "create bucket %s", bucket)
	}
	log.Info("MinIO bucket created", "bucket", bucket)
	return nil
}
