package config

import (
	"embed"
	"errors"
	"fmt"
	"github.com/pressly/goose/v3"
	"lookescolar-server/internal/util"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// RunMigrations : применяет схему токенов, настроек и SQL-функции валидации
func RunMigrations(db *Database) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("не удалось выбрать диалект goose: %w", err)
	}

	err := goose.Up(db.DB.DB, migrationsDir)
	if err != nil {
		if errors.Is(err, goose.ErrNoNextVersion) {
			util.Logger.Info("новых миграций нет")
			return nil
		}
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	util.Logger.Info("миграции БД применены")
	return nil
}
