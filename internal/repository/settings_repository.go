package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"lookescolar-server/config"
	"lookescolar-server/internal/util"
)

// SettingsRepository : key/value настройки в app_settings, значение хранится как jsonb
type SettingsRepository struct {
	*config.Database
}

func NewSettingsRepository(database *config.Database) *SettingsRepository {
	return &SettingsRepository{database}
}

// Get : false, если ключа нет
func (r *SettingsRepository) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	var raw []byte
	err := r.DB.GetContext(ctx, &raw, `SELECT value FROM app_settings WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, util.LogError("[SettingsRepo] не удалось получить настройку из БД", err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return false, util.LogError("[SettingsRepo] не удалось разобрать настройку "+key, err)
	}
	return true, nil
}

func (r *SettingsRepository) Put(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось сериализовать настройку", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, string(data))
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось сохранить настройку в БД", err)
	}
	return nil
}
