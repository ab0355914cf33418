package handler_test

import (
	"context"
	"github.com/stretchr/testify/mock"
	"lookescolar-server/internal/model"
	"sync"
	"time"
)

type MockAccessTokenService struct{ mock.Mock }

func (m *MockAccessTokenService) CreateToken(ctx context.Context, req model.CreateTokenRequest) (*model.CreatedToken, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreatedToken), args.Error(1)
}

func (m *MockAccessTokenService) ValidateToken(ctx context.Context, token string) model.TokenValidationResult {
	return m.Called(ctx, token).Get(0).(model.TokenValidationResult)
}

func (m *MockAccessTokenService) GetToken(ctx context.Context, id string) (*model.TokenInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenInfo), args.Error(1)
}

func (m *MockAccessTokenService) GetTokensByResource(ctx context.Context, scope model.TokenScope, resourceID string) ([]model.TokenInfo, error) {
	args := m.Called(ctx, scope, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TokenInfo), args.Error(1)
}

func (m *MockAccessTokenService) RevokeToken(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccessTokenService) RotateToken(ctx context.Context, id, createdBy string, expiresAt *time.Time) (*model.CreatedToken, error) {
	args := m.Called(ctx, id, createdBy, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreatedToken), args.Error(1)
}

func (m *MockAccessTokenService) LogAccess(ctx context.Context, entry model.AccessLogEntry) bool {
	return m.Called(ctx, entry).Bool(0)
}

func (m *MockAccessTokenService) CleanupExpiredTokens(ctx context.Context, retentionDays int) (*model.CleanupResult, error) {
	args := m.Called(ctx, retentionDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CleanupResult), args.Error(1)
}

type MockSubjectTokenService struct{ mock.Mock }

func (m *MockSubjectTokenService) GenerateToken(ctx context.Context, subjectID string, expiresAt *time.Time) (*model.GeneratedSubjectToken, error) {
	args := m.Called(ctx, subjectID, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedSubjectToken), args.Error(1)
}

func (m *MockSubjectTokenService) RotateToken(ctx context.Context, subjectID string, expiresAt *time.Time) (*model.GeneratedSubjectToken, error) {
	args := m.Called(ctx, subjectID, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedSubjectToken), args.Error(1)
}

func (m *MockSubjectTokenService) ValidateToken(ctx context.Context, token string) model.TokenValidationResult {
	return m.Called(ctx, token).Get(0).(model.TokenValidationResult)
}

type MockPhotoService struct{ mock.Mock }

func (m *MockPhotoService) UploadPreviews(ctx context.Context, eventID string, files []model.UploadFile) (*model.UploadResult, error) {
	args := m.Called(ctx, eventID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResult), args.Error(1)
}

func (m *MockPhotoService) PreviewURL(ctx context.Context, eventID, filename string) (string, error) {
	args := m.Called(ctx, eventID, filename)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoService) DeletePreview(ctx context.Context, eventID, filename string) error {
	return m.Called(ctx, eventID, filename).Error(0)
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

type MockFeatureFlagService struct{ mock.Mock }

func (m *MockFeatureFlagService) Get(ctx context.Context, tenantID string) (model.TenantFeatures, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(model.TenantFeatures), args.Error(1)
}

func (m *MockFeatureFlagService) Set(ctx context.Context, tenantID string, flags map[string]bool) (model.TenantFeatures, error) {
	args := m.Called(ctx, tenantID, flags)
	return args.Get(0).(model.TenantFeatures), args.Error(1)
}

// recordingQueue : запоминает записи аудита вместо записи в БД
type recordingQueue struct {
	mu      sync.Mutex
	entries []model.AccessLogEntry
}

func (q *recordingQueue) Enqueue(entry model.AccessLogEntry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, entry)
	return true
}

func (q *recordingQueue) Entries() []model.AccessLogEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]model.AccessLogEntry(nil), q.entries...)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }
