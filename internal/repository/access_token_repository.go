package repository

import (
	"context"
	"database/sql"
	"errors"
	"lookescolar-server/config"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/util"
)

const accessTokenColumns = `id, scope, event_id, course_id, subject_id, token_prefix, token_hash, salt,
	access_level, can_download, max_uses, use_count, expires_at, revoked_at, last_used_at,
	created_by, metadata, created_at`

type AccessTokenRepository struct {
	*config.Database
}

func NewAccessTokenRepository(database *config.Database) *AccessTokenRepository {
	return &AccessTokenRepository{database}
}

// Insert : сохраняет новый токен. Открытый текст сюда не передаётся
func (r *AccessTokenRepository) Insert(ctx context.Context, token *model.AccessToken) error {
	query := `
		INSERT INTO access_tokens (id, scope, event_id, course_id, subject_id, token_prefix, token_hash, salt,
		                           access_level, can_download, max_uses, expires_at, created_by, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	metadata := "{}"
	if len(token.Metadata) > 0 {
		metadata = string(token.Metadata)
	}

	err := r.DB.QueryRowxContext(ctx, query,
		token.ID,
		token.Scope,
		token.EventID,
		token.CourseID,
		token.SubjectID,
		token.TokenPrefix,
		token.TokenHash,
		token.Salt,
		token.AccessLevel,
		token.CanDownload,
		token.MaxUses,
		token.ExpiresAt,
		token.CreatedBy,
		metadata,
	).Scan(&token.CreatedAt)
	if err != nil {
		return util.LogError("[AccessTokenRepo] не удалось сохранить токен в БД", err)
	}

	return nil
}

// FindByID : nil без ошибки, если токена нет
func (r *AccessTokenRepository) FindByID(ctx context.Context, id string) (*model.AccessToken, error) {
	var token model.AccessToken
	err := r.DB.GetContext(ctx, &token, `SELECT `+accessTokenColumns+` FROM access_tokens WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[AccessTokenRepo] не удалось найти токен в БД", err)
	}
	return &token, nil
}

// ListByResource : все токены ресурса, новые первыми
func (r *AccessTokenRepository) ListByResource(ctx context.Context, scope model.TokenScope, resourceID string) ([]model.AccessToken, error) {
	column, err := resourceColumn(scope)
	if err != nil {
		return nil, err
	}

	tokens := []model.AccessToken{}
	query := `SELECT ` + accessTokenColumns + ` FROM access_tokens WHERE scope = $1 AND ` + column + ` = $2 ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &tokens, query, scope, resourceID); err != nil {
		return nil, util.LogError("[AccessTokenRepo] не удалось получить список токенов", err)
	}
	return tokens, nil
}

// Revoke : повторный отзыв не меняет revoked_at
func (r *AccessTokenRepository) Revoke(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE access_tokens SET revoked_at = COALESCE(revoked_at, NOW()) WHERE id = $1`, id)
	if err != nil {
		return util.LogError("[AccessTokenRepo] не удалось отозвать токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[AccessTokenRepo] не удалось проверить число отозванных строк", err)
	}
	if rowsAffected == 0 {
		return model.ErrTokenNotFound
	}
	return nil
}

// Validate : один вызов validate_access_token, пустой результат значит "не найден"
func (r *AccessTokenRepository) Validate(ctx context.Context, token string) ([]model.ValidationRow, error) {
	rows := []model.ValidationRow{}
	query := `SELECT is_valid, token_id, scope, resource_id, access_level, can_download, reason FROM validate_access_token($1)`
	if err := r.DB.SelectContext(ctx, &rows, query, token); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AccessTokenRepository) LogAccess(ctx context.Context, entry model.AccessLogEntry) error {
	var ok bool
	err := r.DB.GetContext(ctx, &ok, `SELECT log_token_access($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.Token,
		entry.Action,
		nullable(entry.IP),
		nullable(entry.UserAgent),
		nullable(entry.Path),
		entry.ResponseTimeMs,
		entry.Success,
		nullable(entry.Note),
	)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("log_token_access вернула false")
	}
	return nil
}

func (r *AccessTokenRepository) Cleanup(ctx context.Context, retentionDays int) (*model.CleanupResult, error) {
	var result model.CleanupResult
	err := r.DB.GetContext(ctx, &result, `SELECT tokens_removed, logs_removed FROM cleanup_expired_tokens($1)`, retentionDays)
	if err != nil {
		return nil, util.LogError("[AccessTokenRepo] ошибка очистки токенов", err)
	}
	return &result, nil
}

func resourceColumn(scope model.TokenScope) (string, error) {
	switch scope {
	case model.ScopeEvent:
		return "event_id", nil
	case model.ScopeCourse:
		return "course_id", nil
	case model.ScopeFamily:
		return "subject_id", nil
	}
	return "", model.ErrInvalidScope
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
