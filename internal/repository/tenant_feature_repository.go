package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"lookescolar-server/config"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/util"
	"time"
)

type TenantFeatureRepository struct {
	*config.Database
}

func NewTenantFeatureRepository(database *config.Database) *TenantFeatureRepository {
	return &TenantFeatureRepository{database}
}

// Get : неизвестный арендатор получает пустой набор флагов
func (r *TenantFeatureRepository) Get(ctx context.Context, tenantID string) (*model.TenantFeatures, error) {
	var row struct {
		Flags     []byte    `db:"flags"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	err := r.DB.GetContext(ctx, &row, `SELECT flags, updated_at FROM tenant_features WHERE tenant_id = $1`, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.TenantFeatures{TenantID: tenantID, Flags: map[string]bool{}}, nil
	}
	if err != nil {
		return nil, util.LogError("[TenantFeatureRepo] не удалось получить флаги из БД", err)
	}

	features := &model.TenantFeatures{TenantID: tenantID, Flags: map[string]bool{}, UpdatedAt: row.UpdatedAt}
	if err := json.Unmarshal(row.Flags, &features.Flags); err != nil {
		return nil, util.LogError("[TenantFeatureRepo] не удалось разобрать флаги", err)
	}
	return features, nil
}

func (r *TenantFeatureRepository) Put(ctx context.Context, features *model.TenantFeatures) error {
	flags := features.Flags
	if flags == nil {
		flags = map[string]bool{}
	}
	data, err := json.Marshal(flags)
	if err != nil {
		return util.LogError("[TenantFeatureRepo] не удалось сериализовать флаги", err)
	}

	err = r.DB.QueryRowxContext(ctx, `
		INSERT INTO tenant_features (tenant_id, flags, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (tenant_id) DO UPDATE SET flags = EXCLUDED.flags, updated_at = NOW()
		RETURNING updated_at
	`, features.TenantID, string(data)).Scan(&features.UpdatedAt)
	if err != nil {
		return util.LogError("[TenantFeatureRepo] не удалось сохранить флаги в БД", err)
	}
	return nil
}
