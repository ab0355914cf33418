package repository

import (
	"context"
	"database/sql"
	"errors"
	"lookescolar-server/config"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/util"
)

type SubjectTokenRepository struct {
	*config.Database
}

func NewSubjectTokenRepository(database *config.Database) *SubjectTokenRepository {
	return &SubjectTokenRepository{database}
}

func (r *SubjectTokenRepository) DigestExists(ctx context.Context, digest string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM subject_tokens WHERE token_digest = $1)`, digest)
	if err != nil {
		return false, util.LogError("[SubjectTokenRepo] не удалось проверить дайджест в БД", err)
	}
	return exists, nil
}

func (r *SubjectTokenRepository) Insert(ctx context.Context, token *model.SubjectToken) error {
	query := `
		INSERT INTO subject_tokens (id, subject_id, token_prefix, token_digest, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.DB.QueryRowxContext(ctx, query,
		token.ID,
		token.SubjectID,
		token.TokenPrefix,
		token.TokenDigest,
		token.ExpiresAt,
	).Scan(&token.CreatedAt)
	if err != nil {
		return util.LogError("[SubjectTokenRepo] не удалось сохранить токен в БД", err)
	}
	return nil
}

// FindByDigest : nil без ошибки, если токена нет
func (r *SubjectTokenRepository) FindByDigest(ctx context.Context, digest string) (*model.SubjectToken, error) {
	var token model.SubjectToken
	query := `SELECT id, subject_id, token_prefix, token_digest, expires_at, revoked_at, created_at FROM subject_tokens WHERE token_digest = $1`
	err := r.DB.GetContext(ctx, &token, query, digest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[SubjectTokenRepo] не удалось найти токен в БД", err)
	}
	return &token, nil
}

// RevokeActiveForSubject : отзывает неотозванные токены ученика, кроме keepID, возвращает их число
func (r *SubjectTokenRepository) RevokeActiveForSubject(ctx context.Context, subjectID, keepID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE subject_tokens SET revoked_at = NOW() WHERE subject_id = $1 AND id <> $2 AND revoked_at IS NULL`, subjectID, keepID)
	if err != nil {
		return 0, util.LogError("[SubjectTokenRepo] не удалось отозвать токены ученика", err)
	}
	return result.RowsAffected()
}

func (r *SubjectTokenRepository) Revoke(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE subject_tokens SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`, id)
	if err != nil {
		return util.LogError("[SubjectTokenRepo] не удалось отозвать токен", err)
	}
	return nil
}
