package minio

import (
	"Prism/internal/api/config"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// DatasetBucket 数据集快照存储桶
	DatasetBucket string
)

// Init 初始化 MinIO 客户端
func Init() error {
	cfg := config.Cfg.MinIO

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	if _, err = client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}

	Client = client
	DatasetBucket = cfg.DatasetBucket

	exists, err := client.BucketExists(ctx, DatasetBucket)
	if err != nil {
		return fmt.Errorf("failed to check dataset bucket: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, DatasetBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create dataset bucket: %w", err)
		}
	}
	return nil
}
