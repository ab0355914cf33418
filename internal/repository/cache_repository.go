package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"lookescolar-server/config"
	"lookescolar-server/internal/util"
	"time"
)

// CacheRepository : JSON-значения в Redis под префиксом namespace
type CacheRepository struct {
	client    *config.RedisClient
	namespace string
}

func NewCacheRepository(rdb *config.RedisClient, namespace string) *CacheRepository {
	return &CacheRepository{client: rdb, namespace: namespace}
}

func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return util.LogError("[CacheRepo] ошибка сериализации значения", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(key), data, ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("[CacheRepo] ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

// Get : false, если ключа нет в кэше
func (r *CacheRepository) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	val, err := r.client.Client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, util.LogError("[CacheRepo] ошибка чтения из Redis", err)
	}

	if err := json.Unmarshal([]byte(val), target); err != nil {
		return false, util.LogError("[CacheRepo] ошибка десериализации значения из кэша", err)
	}
	return true, nil
}

func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Client.Del(ctx, r.key(key)).Err(); err != nil {
		return util.LogError("[CacheRepo] ошибка удаления из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(key string) string {
	return fmt.Sprintf("%s:%s", r.namespace, key)
}
