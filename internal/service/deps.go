package service

import (
	"context"
	"io"
	"time"
)

// ObjectStorage 媒体字节的存储
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
}

// PendingDeletes 删除失败、等待重试的对象 key
type PendingDeletes interface {
	Add(ctx context.Context, keys ...string) error
	Members(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, keys ...string) error
}

// TokenStore 已注销的 Token
type TokenStore interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}

// TokenIssuer 签发登录凭证
type TokenIssuer interface {
	GenerateToken(userID uint64, username string, roles []string) (string, error)
	Expiration() time.Duration
}

// FileReferences 查询存储路径是否仍被媒体记录引用
type FileReferences interface {
	IsFilePathReferenced(ctx context.Context, filePath string) (bool, error)
}
