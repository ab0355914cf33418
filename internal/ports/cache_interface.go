package ports

import (
	"context"
	"time"
)

// CacheRepository : Redis слой для настроек
type CacheRepository interface {
	Get(ctx context.Context, key string, target interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
