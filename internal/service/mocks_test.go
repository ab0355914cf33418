package service_test

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/mock"
	"lookescolar-server/internal/model"
	"sync"
	"time"
)

type MockAccessTokenRepository struct{ mock.Mock }

func (m *MockAccessTokenRepository) Insert(ctx context.Context, token *model.AccessToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAccessTokenRepository) FindByID(ctx context.Context, id string) (*model.AccessToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessToken), args.Error(1)
}

func (m *MockAccessTokenRepository) ListByResource(ctx context.Context, scope model.TokenScope, resourceID string) ([]model.AccessToken, error) {
	args := m.Called(ctx, scope, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessToken), args.Error(1)
}

func (m *MockAccessTokenRepository) Revoke(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccessTokenRepository) Validate(ctx context.Context, token string) ([]model.ValidationRow, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ValidationRow), args.Error(1)
}

func (m *MockAccessTokenRepository) LogAccess(ctx context.Context, entry model.AccessLogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAccessTokenRepository) Cleanup(ctx context.Context, retentionDays int) (*model.CleanupResult, error) {
	args := m.Called(ctx, retentionDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CleanupResult), args.Error(1)
}

type MockSubjectTokenRepository struct{ mock.Mock }

func (m *MockSubjectTokenRepository) DigestExists(ctx context.Context, digest string) (bool, error) {
	args := m.Called(ctx, digest)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubjectTokenRepository) Insert(ctx context.Context, token *model.SubjectToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSubjectTokenRepository) FindByDigest(ctx context.Context, digest string) (*model.SubjectToken, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubjectToken), args.Error(1)
}

func (m *MockSubjectTokenRepository) RevokeActiveForSubject(ctx context.Context, subjectID, keepID string) (int64, error) {
	args := m.Called(ctx, subjectID, keepID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubjectTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingsRepository : Get копирует заранее заданный JSON в target
type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	args := m.Called(ctx, key)
	if raw, ok := args.Get(0).(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return false, err
		}
		return true, args.Error(1)
	}
	return false, args.Error(1)
}

func (m *MockSettingsRepository) Put(ctx context.Context, key string, value interface{}) error {
	return m.Called(ctx, key, value).Error(0)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	args := m.Called(ctx, key)
	if raw, ok := args.Get(0).(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return false, err
		}
		return true, args.Error(1)
	}
	return false, args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockTenantFeatureRepository struct{ mock.Mock }

func (m *MockTenantFeatureRepository) Get(ctx context.Context, tenantID string) (*model.TenantFeatures, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TenantFeatures), args.Error(1)
}

func (m *MockTenantFeatureRepository) Put(ctx context.Context, features *model.TenantFeatures) error {
	return m.Called(ctx, features).Error(0)
}

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockSettingsService struct{ mock.Mock }

func (m *MockSettingsService) Watermark(ctx context.Context) (model.WatermarkSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.WatermarkSettings), args.Error(1)
}

func (m *MockSettingsService) Processing(ctx context.Context) (model.ProcessingSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ProcessingSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateWatermark(ctx context.Context, settings model.WatermarkSettings) error {
	return m.Called(ctx, settings).Error(0)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
