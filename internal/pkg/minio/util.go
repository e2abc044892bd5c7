package minio

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Upload 上传对象，返回对象 key
func (s *Storage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	uploadInfo, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload file")
	}
	return uploadInfo.Key, nil
}

// Delete 删除对象，对象不存在不视为错误
func (s *Storage) Delete(ctx context.Context, objectName string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return errors.Wrapf(err, "failed to delete file %s", objectName)
	}
	return nil
}

// PublicURL 对象的公共访问地址
func (s *Storage) PublicURL(objectName string) string {
	return strings.TrimRight(s.publicBase, "/") + "/" + strings.TrimLeft(objectName, "/")
}
