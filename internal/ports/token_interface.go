package ports

import (
	"context"
	"lookescolar-server/internal/model"
	"time"
)

// AccessTokenRepository : SQL слой access_tokens и функций валидации
type AccessTokenRepository interface {
	Insert(ctx context.Context, token *model.AccessToken) error
	FindByID(ctx context.Context, id string) (*model.AccessToken, error)
	ListByResource(ctx context.Context, scope model.TokenScope, resourceID string) ([]model.AccessToken, error)
	Revoke(ctx context.Context, id string) error
	Validate(ctx context.Context, token string) ([]model.ValidationRow, error)
	LogAccess(ctx context.Context, entry model.AccessLogEntry) error
	Cleanup(ctx context.Context, retentionDays int) (*model.CleanupResult, error)
}

type AccessTokenService interface {
	CreateToken(ctx context.Context, req model.CreateTokenRequest) (*model.CreatedToken, error)
	ValidateToken(ctx context.Context, token string) model.TokenValidationResult
	GetToken(ctx context.Context, id string) (*model.TokenInfo, error)
	GetTokensByResource(ctx context.Context, scope model.TokenScope, resourceID string) ([]model.TokenInfo, error)
	RevokeToken(ctx context.Context, id string) error
	RotateToken(ctx context.Context, id, createdBy string, expiresAt *time.Time) (*model.CreatedToken, error)
	LogAccess(ctx context.Context, entry model.AccessLogEntry) bool
	CleanupExpiredTokens(ctx context.Context, retentionDays int) (*model.CleanupResult, error)
}

// SubjectTokenRepository : SQL слой subject_tokens
type SubjectTokenRepository interface {
	DigestExists(ctx context.Context, digest string) (bool, error)
	Insert(ctx context.Context, token *model.SubjectToken) error
	FindByDigest(ctx context.Context, digest string) (*model.SubjectToken, error)
	RevokeActiveForSubject(ctx context.Context, subjectID, keepID string) (int64, error)
	Revoke(ctx context.Context, id string) error
}

type SubjectTokenService interface {
	GenerateToken(ctx context.Context, subjectID string, expiresAt *time.Time) (*model.GeneratedSubjectToken, error)
	RotateToken(ctx context.Context, subjectID string, expiresAt *time.Time) (*model.GeneratedSubjectToken, error)
	ValidateToken(ctx context.Context, token string) model.TokenValidationResult
}

// AccessLogQueue : неблокирующая постановка записи аудита
type AccessLogQueue interface {
	Enqueue(entry model.AccessLogEntry) bool
}
