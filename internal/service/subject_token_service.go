package service

import (
	"context"
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

// MaxSubjectTokenAttempts : сколько раз перегенерировать токен при коллизии дайджеста
const MaxSubjectTokenAttempts = 10

// SubjectTokenService : токены семейного портала, по одному активному на ученика
type SubjectTokenService struct {
	repository ports.SubjectTokenRepository
	clock      cache.Clock
	generate   func() (string, error)
	logger     logrus.FieldLogger
}

type SubjectTokenOption func(*SubjectTokenService)

// WithTokenGenerator : подмена генератора, нужна для проверки коллизий
func WithTokenGenerator(generate func() (string, error)) SubjectTokenOption {
	return func(s *SubjectTokenService) {
		s.generate = generate
	}
}

func WithClock(clock cache.Clock) SubjectTokenOption {
	return func(s *SubjectTokenService) {
		s.clock = clock
	}
}

func NewSubjectTokenService(repository ports.SubjectTokenRepository, opts ...SubjectTokenOption) *SubjectTokenService {
	s := &SubjectTokenService{
		repository: repository,
		clock:      cache.SystemClock,
		generate:   security.GenerateSubjectToken,
		logger:     util.Logger.WithField("service", "subject_tokens"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateToken : хранится только дайджест. После 10 коллизий подряд возвращает ошибку.
func (s *SubjectTokenService) GenerateToken(ctx context.Context, subjectID string, expiresAt *time.Time) (*model.GeneratedSubjectToken, error) {
	if subjectID == "" {
		return nil, model.ErrMissingResource
	}

	for attempt := 1; attempt <= MaxSubjectTokenAttempts; attempt++ {
		plaintext, err := s.generate()
		if err != nil {
			return nil, util.LogError("[SubjectTokenService] не удалось сгенерировать токен", err)
		}

		digest := security.SubjectDigest(plaintext)
		exists, err := s.repository.DigestExists(ctx, digest)
		if err != nil {
			return nil, err
		}
		if exists {
			s.logger.WithFields(logrus.Fields{"subject_id": subjectID, "attempt": attempt}).Warn("коллизия токена ученика, генерируем заново")
			continue
		}

		token := &model.SubjectToken{
			ID:          uuid.NewString(),
			SubjectID:   subjectID,
			TokenPrefix: security.TokenPrefix(plaintext),
			TokenDigest: digest,
			ExpiresAt:   expiresAt,
		}
		if err := s.repository.Insert(ctx, token); err != nil {
			return nil, err
		}

		s.logger.WithFields(logrus.Fields{"subject_id": subjectID, "token_id": token.ID}).Info("токен ученика выпущен")
		return &model.GeneratedSubjectToken{
			Token:     plaintext,
			TokenID:   token.ID,
			SubjectID: subjectID,
			ExpiresAt: expiresAt,
		}, nil
	}

	return nil, fmt.Errorf("%w after %d attempts", model.ErrTokenCollision, MaxSubjectTokenAttempts)
}

// RotateToken : выпускает новую строку и только затем отзывает прежние токены ученика.
// Если отзыв не удался, новый токен отзывается, а прежние остаются рабочими.
func (s *SubjectTokenService) RotateToken(ctx context.Context, subjectID string, expiresAt *time.Time) (*model.GeneratedSubjectToken, error) {
	if subjectID == "" {
		return nil, model.ErrMissingResource
	}

	generated, err := s.GenerateToken(ctx, subjectID, expiresAt)
	if err != nil {
		return nil, err
	}

	revoked, err := s.repository.RevokeActiveForSubject(ctx, subjectID, generated.TokenID)
	if err != nil {
		if rollbackErr := s.repository.Revoke(ctx, generated.TokenID); rollbackErr != nil {
			s.logger.WithError(rollbackErr).WithField("token_id", generated.TokenID).Error("не удалось отозвать новый токен ученика")
		}
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"subject_id": subjectID, "revoked": revoked}).Info("токены ученика ротированы")

	return generated, nil
}

func (s *SubjectTokenService) ValidateToken(ctx context.Context, token string) model.TokenValidationResult {
	found, err := s.repository.FindByDigest(ctx, security.SubjectDigest(token))
	if err != nil {
		metrics.TokenValidations.WithLabelValues("subject", "error").Inc()
		return model.TokenValidationResult{Reason: reasonValidationError + err.Error()}
	}
	if found == nil {
		metrics.TokenValidations.WithLabelValues("subject", "invalid").Inc()
		return model.TokenValidationResult{Reason: reasonNotFound}
	}

	if found.RevokedAt != nil {
		metrics.TokenValidations.WithLabelValues("subject", "invalid").Inc()
		return model.TokenValidationResult{TokenID: found.ID, Scope: model.ScopeFamily, Reason: "Token revoked"}
	}
	if found.ExpiresAt != nil && !found.ExpiresAt.After(s.clock.Now()) {
		metrics.TokenValidations.WithLabelValues("subject", "invalid").Inc()
		return model.TokenValidationResult{TokenID: found.ID, Scope: model.ScopeFamily, Reason: "Token expired"}
	}

	metrics.TokenValidations.WithLabelValues("subject", "valid").Inc()
	return model.TokenValidationResult{
		IsValid:     true,
		TokenID:     found.ID,
		Scope:       model.ScopeFamily,
		ResourceID:  found.SubjectID,
		AccessLevel: model.AccessReadOnly,
	}
}
