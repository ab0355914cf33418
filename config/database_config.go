package config

import (
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"lookescolar-server/internal/util"
	"time"
)

type Database struct {
	*sqlx.DB
}

// NewDatabaseConnection : подключается к БД, повторяя попытки с экспоненциальной задержкой
func NewDatabaseConnection(dbDriver string, cfg *DatabaseConfig) (*Database, error) {
	var database *sqlx.DB

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.ConnectAttempts-1))
	err := backoff.RetryNotify(func() error {
		db, err := sqlx.Connect(dbDriver, cfg.DSN)
		if err != nil {
			return err
		}
		database = db
		return nil
	}, policy, func(err error, wait time.Duration) {
		util.Logger.WithError(err).WithField("retry_in", wait).Warn("БД пока недоступна")
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		database.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	util.Logger.Info("подключение к БД установлено")
	return &Database{
		database,
	}, nil
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}
