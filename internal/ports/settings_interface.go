package ports

import (
	"context"
	"lookescolar-server/internal/model"
)

// SettingsRepository : SQL слой app_settings
type SettingsRepository interface {
	Get(ctx context.Context, key string, target interface{}) (bool, error)
	Put(ctx context.Context, key string, value interface{}) error
}

type TenantFeatureRepository interface {
	Get(ctx context.Context, tenantID string) (*model.TenantFeatures, error)
	Put(ctx context.Context, features *model.TenantFeatures) error
}

type SettingsService interface {
	Watermark(ctx context.Context) (model.WatermarkSettings, error)
	Processing(ctx context.Context) (model.ProcessingSettings, error)
	UpdateWatermark(ctx context.Context, settings model.WatermarkSettings) error
}

type FeatureFlagService interface {
	Get(ctx context.Context, tenantID string) (model.TenantFeatures, error)
	Set(ctx context.Context, tenantID string, flags map[string]bool) (model.TenantFeatures, error)
}
