package service

import (
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/ports"
	"lookescolar-server/internal/util"
	"time"
)

const (
	watermarkSettingsKey  = "watermark"
	processingSettingsKey = "processing"
)

// SettingsService : app_settings за кэшем Redis. Каждый вызов перечитывает
// настройки, так что действует последнее сохранённое значение.
type SettingsService struct {
	repository ports.SettingsRepository
	cache      ports.CacheRepository
	ttl        time.Duration
	defaults   model.ProcessingSettings
	logger     logrus.FieldLogger
}

func NewSettingsService(repository ports.SettingsRepository, cache ports.CacheRepository, ttl time.Duration, defaults model.ProcessingSettings) *SettingsService {
	return &SettingsService{
		repository: repository,
		cache:      cache,
		ttl:        ttl,
		defaults:   defaults,
		logger:     util.Logger.WithField("service", "settings"),
	}
}

// Watermark : при отсутствии записи возвращаются значения по умолчанию
func (s *SettingsService) Watermark(ctx context.Context) (model.WatermarkSettings, error) {
	settings := model.DefaultWatermarkSettings()
	if err := s.load(ctx, watermarkSettingsKey, &settings); err != nil {
		return model.WatermarkSettings{}, err
	}
	return settings, nil
}

func (s *SettingsService) Processing(ctx context.Context) (model.ProcessingSettings, error) {
	settings := s.defaults
	if err := s.load(ctx, processingSettingsKey, &settings); err != nil {
		return model.ProcessingSettings{}, err
	}
	if settings.MaxDimension <= 0 {
		settings.MaxDimension = s.defaults.MaxDimension
	}
	if settings.Quality <= 0 || settings.Quality > 100 {
		settings.Quality = s.defaults.Quality
	}
	return settings, nil
}

func (s *SettingsService) UpdateWatermark(ctx context.Context, settings model.WatermarkSettings) error {
	if settings.Opacity < 0 || settings.Opacity > 100 {
		return fmt.Errorf("%w: прозрачность должна быть в диапазоне 0-100", ErrInvalidSettings)
	}
	if !settings.Position.Valid() {
		return fmt.Errorf("%w: неизвестная позиция %q", ErrInvalidSettings, settings.Position)
	}
	switch settings.FontSize {
	case "small", "medium", "large":
	default:
		return fmt.Errorf("%w: неизвестный размер шрифта %q", ErrInvalidSettings, settings.FontSize)
	}

	if err := s.repository.Put(ctx, watermarkSettingsKey, settings); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, watermarkSettingsKey); err != nil {
		s.logger.WithError(err).Warn("не удалось сбросить кэш настроек водяного знака")
	}

	s.logger.WithField("position", settings.Position).Info("настройки водяного знака обновлены")
	return nil
}

// load : сначала Redis, затем БД. Ошибка Redis не мешает чтению из БД
func (s *SettingsService) load(ctx context.Context, key string, target interface{}) error {
	found, err := s.cache.Get(ctx, key, target)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("ошибка чтения настроек из кэша")
	}
	if found {
		return nil
	}

	found, err = s.repository.Get(ctx, key, target)
	if err != nil {
		return util.LogError("[SettingsService] не удалось получить настройки", err)
	}
	if !found {
		return nil
	}

	if err := s.cache.Set(ctx, key, target, s.ttl); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("ошибка записи настроек в кэш")
	}
	return nil
}
