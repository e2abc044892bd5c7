package minio

import (
	"Inkstone/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// Storage MinIO 对象存储
type Storage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewStorage 连接 MinIO 并确保存储桶存在
func NewStorage(ctx context.Context, cfg config.MinIOConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to minio server")
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "failed to create bucket %s", cfg.Bucket)
		}
		log.Info("minio bucket created", "bucket", cfg.Bucket)
	}

	publicBase := cfg.PublicBase
	if publicBase == "" {
		protocol := "http"
		if cfg.UseSSL {
			protocol = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", protocol, cfg.Endpoint, cfg.Bucket)
	}

	return &Storage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase,
	}, nil
}
