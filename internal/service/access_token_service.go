package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"lookescolar-server/internal/cache"
	"lookescolar-server/internal/metrics"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/ports"
	"lookescolar-server/internal/security"
	"lookescolar-server/internal/util"
	"time"
)

const (
	reasonNotFound        = "Token not found"
	reasonValidationError = "Validation error: "
)

// AccessTokenService : строки токенов неизменяемы, ротация отзывает старый и выпускает новый
type AccessTokenService struct {
	repository ports.AccessTokenRepository
	clock      cache.Clock
	logger     logrus.FieldLogger
}

func NewAccessTokenService(repository ports.AccessTokenRepository, clock cache.Clock) *AccessTokenService {
	if clock == nil {
		clock = cache.SystemClock
	}
	return &AccessTokenService{
		repository: repository,
		clock:      clock,
		logger:     util.Logger.WithField("service", "access_tokens"),
	}
}

// CreateToken : открытый токен возвращается один раз, в БД пишутся только префикс, соль и хэш
func (s *AccessTokenService) CreateToken(ctx context.Context, req model.CreateTokenRequest) (*model.CreatedToken, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	material, err := security.GenerateAccessToken(req.Scope)
	if err != nil {
		return nil, fmt.Errorf("Failed to create token: %w", err)
	}

	token := &model.AccessToken{
		ID:          uuid.NewString(),
		TokenPrefix: material.Prefix,
		TokenHash:   material.Hash,
		Salt:        material.Salt,
		AccessLevel: model.AccessReadOnly,
		CanDownload: false,
		MaxUses:     req.MaxUses,
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   req.CreatedBy,
		Metadata:    []byte("{}"),
	}
	token.SetResource(req.Scope, req.ResourceID)
	if req.AccessLevel != nil {
		token.AccessLevel = *req.AccessLevel
	}
	if req.CanDownload != nil {
		token.CanDownload = *req.CanDownload
	}

	if err := s.repository.Insert(ctx, token); err != nil {
		return nil, fmt.Errorf("Failed to create token: %w", err)
	}

	metrics.TokensCreated.WithLabelValues(string(req.Scope)).Inc()
	s.logger.WithFields(logrus.Fields{
		"token_id": token.ID,
		"prefix":   token.TokenPrefix,
		"scope":    token.Scope,
	}).Info("токен доступа выпущен")

	return &model.CreatedToken{
		Token:     material.Plaintext,
		TokenID:   token.ID,
		Prefix:    token.TokenPrefix,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

func validateCreateRequest(req model.CreateTokenRequest) error {
	if !req.Scope.Valid() {
		return model.ErrInvalidScope
	}
	if req.ResourceID == "" {
		return model.ErrMissingResource
	}
	if req.CreatedBy == "" {
		return model.ErrMissingCreator
	}
	if req.AccessLevel != nil && !req.AccessLevel.Valid() {
		return model.ErrInvalidAccessLevel
	}
	if req.MaxUses != nil && *req.MaxUses <= 0 {
		return model.ErrInvalidMaxUses
	}
	return nil
}

// ValidateToken : проверка и учёт использования выполняются в БД за один вызов.
// Ошибки не возвращаются, причина отказа лежит в Reason.
func (s *AccessTokenService) ValidateToken(ctx context.Context, token string) model.TokenValidationResult {
	rows, err := s.repository.Validate(ctx, token)
	if err != nil {
		metrics.TokenValidations.WithLabelValues("access", "error").Inc()
		s.logger.WithError(err).WithField("prefix", security.TokenPrefix(token)).Warn("ошибка вызова проверки токена")
		return model.TokenValidationResult{IsValid: false, Reason: reasonValidationError + err.Error()}
	}
	if len(rows) == 0 {
		metrics.TokenValidations.WithLabelValues("access", "invalid").Inc()
		return model.TokenValidationResult{IsValid: false, Reason: reasonNotFound}
	}

	row := rows[0]
	if !row.IsValid {
		metrics.TokenValidations.WithLabelValues("access", "invalid").Inc()
		return model.TokenValidationResult{IsValid: false, Reason: deref(row.Reason)}
	}

	metrics.TokenValidations.WithLabelValues("access", "valid").Inc()
	result := model.TokenValidationResult{
		IsValid:     true,
		TokenID:     deref(row.TokenID),
		Scope:       model.TokenScope(deref(row.Scope)),
		ResourceID:  deref(row.ResourceID),
		AccessLevel: model.AccessLevel(deref(row.AccessLevel)),
	}
	if row.CanDownload != nil {
		result.CanDownload = *row.CanDownload
	}
	return result
}

// GetToken : nil без ошибки для несуществующего токена
func (s *AccessTokenService) GetToken(ctx context.Context, id string) (*model.TokenInfo, error) {
	token, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, util.LogError("[AccessTokenService] не удалось получить токен", err)
	}
	if token == nil {
		return nil, nil
	}

	info := model.NewTokenInfo(*token, s.clock.Now())
	return &info, nil
}

func (s *AccessTokenService) GetTokensByResource(ctx context.Context, scope model.TokenScope, resourceID string) ([]model.TokenInfo, error) {
	if !scope.Valid() {
		return nil, model.ErrInvalidScope
	}

	tokens, err := s.repository.ListByResource(ctx, scope, resourceID)
	if err != nil {
		return nil, util.LogError("[AccessTokenService] не удалось получить список токенов", err)
	}

	now := s.clock.Now()
	infos := make([]model.TokenInfo, 0, len(tokens))
	for _, token := range tokens {
		infos = append(infos, model.NewTokenInfo(token, now))
	}
	return infos, nil
}

// RevokeToken : повторный отзыв успешен и ничего не меняет
func (s *AccessTokenService) RevokeToken(ctx context.Context, id string) error {
	if err := s.repository.Revoke(ctx, id); err != nil {
		if errors.Is(err, model.ErrTokenNotFound) {
			return err
		}
		return util.LogError("[AccessTokenService] не удалось отозвать токен", err)
	}

	s.logger.WithField("token_id", id).Info("токен доступа отозван")
	return nil
}

// RotateToken : новый токен наследует область, ресурс и ограничения старого.
// Срок действия берётся из expiresAt, если он задан, иначе от старого токена;
// истёкший токен без нового срока не ротируется. Старый отзывается только после
// выпуска нового, при ошибке отзыва новый отзывается обратно.
func (s *AccessTokenService) RotateToken(ctx context.Context, id, createdBy string, expiresAt *time.Time) (*model.CreatedToken, error) {
	old, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, util.LogError("[AccessTokenService] не удалось загрузить токен для ротации", err)
	}
	if old == nil {
		return nil, model.ErrTokenNotFound
	}

	now := s.clock.Now()
	if expiresAt != nil && !expiresAt.After(now) {
		return nil, model.ErrInvalidExpiry
	}
	if expiresAt == nil {
		if old.ExpiresAt != nil && !old.ExpiresAt.After(now) {
			return nil, model.ErrTokenExpired
		}
		expiresAt = old.ExpiresAt
	}

	if createdBy == "" {
		createdBy = old.CreatedBy
	}
	accessLevel := old.AccessLevel
	canDownload := old.CanDownload

	created, err := s.CreateToken(ctx, model.CreateTokenRequest{
		Scope:       old.Scope,
		ResourceID:  old.ResourceID(),
		CreatedBy:   createdBy,
		AccessLevel: &accessLevel,
		CanDownload: &canDownload,
		MaxUses:     old.MaxUses,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.RevokeToken(ctx, id); err != nil {
		if rollbackErr := s.repository.Revoke(ctx, created.TokenID); rollbackErr != nil {
			s.logger.WithError(rollbackErr).WithField("token_id", created.TokenID).Error("не удалось отозвать новый токен после ошибки ротации")
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"old_token_id": id, "token_id": created.TokenID}).Info("токен доступа ротирован")
	return created, nil
}

// LogAccess : ошибки аудита не пробрасываются, только false
func (s *AccessTokenService) LogAccess(ctx context.Context, entry model.AccessLogEntry) bool {
	if err := s.repository.LogAccess(ctx, entry); err != nil {
		metrics.AccessLogDropped.Inc()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"prefix": security.TokenPrefix(entry.Token),
			"action": entry.Action,
		}).Warn("не удалось записать журнал доступа")
		return false
	}
	return true
}

func (s *AccessTokenService) CleanupExpiredTokens(ctx context.Context, retentionDays int) (*model.CleanupResult, error) {
	if retentionDays <= 0 {
		return nil, fmt.Errorf("[AccessTokenService] срок хранения должен быть больше нуля, получено %d", retentionDays)
	}

	result, err := s.repository.Cleanup(ctx, retentionDays)
	if err != nil {
		return nil, util.LogError("[AccessTokenService] ошибка очистки токенов", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tokens_removed": result.TokensRemoved,
		"logs_removed":   result.LogsRemoved,
	}).Info("истёкшие токены удалены")
	return result, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
