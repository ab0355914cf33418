package ports

import (
	"context"
	"time"
)

// S3Storage : для S3
type S3Storage interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
}
