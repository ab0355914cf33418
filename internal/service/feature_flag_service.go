package service

import (
	"context"
	"errors"
	"lookescolar-server/internal/cache"
	"lookescolar-server/internal/metrics"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/ports"
	"lookescolar-server/internal/util"
	"time"
)

const DefaultFeatureFlagTTL = 5 * time.Minute

// FeatureFlagService : флаги арендатора с локальным кэшем. Чтение может отставать от записи другого процесса на TTL
type FeatureFlagService struct {
	repository ports.TenantFeatureRepository
	cache      *cache.TTLCache[string, model.TenantFeatures]
}

func NewFeatureFlagService(repository ports.TenantFeatureRepository, ttl time.Duration, clock cache.Clock) *FeatureFlagService {
	if ttl <= 0 {
		ttl = DefaultFeatureFlagTTL
	}
	return &FeatureFlagService{
		repository: repository,
		cache:      cache.NewTTLCache[string, model.TenantFeatures](ttl, clock),
	}
}

// Get : на промахе кэш сначала чистится от просроченных арендаторов
func (s *FeatureFlagService) Get(ctx context.Context, tenantID string) (model.TenantFeatures, error) {
	if tenantID == "" {
		return model.TenantFeatures{}, errors.New("не указан id арендатора")
	}
	if features, ok := s.cache.Get(tenantID); ok {
		return features, nil
	}

	features, err := s.repository.Get(ctx, tenantID)
	if err != nil {
		return model.TenantFeatures{}, util.LogError("[FeatureFlagService] не удалось получить флаги", err)
	}

	s.cache.Purge()
	s.cache.Set(tenantID, *features)
	metrics.FeatureFlagCacheEntries.Set(float64(s.cache.Len()))
	return *features, nil
}

// Set : запись в БД и сброс кэша этого арендатора
func (s *FeatureFlagService) Set(ctx context.Context, tenantID string, flags map[string]bool) (model.TenantFeatures, error) {
	if tenantID == "" {
		return model.TenantFeatures{}, errors.New("не указан id арендатора")
	}

	features := &model.TenantFeatures{TenantID: tenantID, Flags: flags}
	if err := s.repository.Put(ctx, features); err != nil {
		return model.TenantFeatures{}, util.LogError("[FeatureFlagService] не удалось сохранить флаги", err)
	}

	s.cache.Invalidate(tenantID)
	return *features, nil
}
